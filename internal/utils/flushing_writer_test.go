package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/internal/utils"
)

type flushRecordingWriter struct {
	buffer     bytes.Buffer
	flushCount int
}

func (writer *flushRecordingWriter) Write(data []byte) (int, error) {
	return writer.buffer.Write(data)
}

func (writer *flushRecordingWriter) Flush() error {
	writer.flushCount++
	return nil
}

func TestFlushingWriterFlushesAfterEachWrite(testInstance *testing.T) {
	underlyingWriter := &flushRecordingWriter{}
	flushingWriter := utils.NewFlushingWriter(underlyingWriter)

	bytesWritten, writeError := flushingWriter.Write([]byte("transcript line"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len("transcript line"), bytesWritten)
	require.Equal(testInstance, 1, underlyingWriter.flushCount)
	require.Equal(testInstance, "transcript line", underlyingWriter.buffer.String())
}

func TestFlushingWriterAvoidsDoubleWrapping(testInstance *testing.T) {
	wrappedOnce := utils.NewFlushingWriter(&bytes.Buffer{})
	wrappedTwice := utils.NewFlushingWriter(wrappedOnce)
	require.Same(testInstance, wrappedOnce, wrappedTwice)
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}
