package utils_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/internal/utils"
)

const (
	testLoggerSubtestNameTemplateConstant = "%d_%s_%s"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		logLevel      utils.LogLevel
		logFormat     utils.LogFormat
		expectFailure bool
	}{
		{logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatConsole},
		{logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatStructured},
		{logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatStructured},
		{logLevel: utils.LogLevelError, logFormat: utils.LogFormatConsole},
		{logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatConsole, expectFailure: true},
		{logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("xml"), expectFailure: true},
	}

	loggerFactory := utils.NewLoggerFactory()

	for testCaseIndex, testCase := range testCases {
		subtestName := fmt.Sprintf(testLoggerSubtestNameTemplateConstant, testCaseIndex, testCase.logLevel, testCase.logFormat)
		testInstance.Run(subtestName, func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectFailure {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
