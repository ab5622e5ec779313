package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := SourceUnavailable("report.xlsx", fs.ErrNotExist)

	wrapped := Wrap(base, "load failed")

	assert.Equal(t, CodeSourceUnavailable, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))
	assert.Contains(t, wrapped.Error(), "report.xlsx")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(stderrors.New("disk full"), "write %s", "out.xlsx")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "write out.xlsx: disk full", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestIsAppError(t *testing.T) {
	err := Wrap(ExportFailed("xlsx", stderrors.New("closed")), "run failed")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeExportFailed, GetCode(err))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, CodeConfigInvalid, ConfigInvalid("x").Code)
	assert.Equal(t, CodeDatabaseError, DatabaseError("x", nil).Code)
	assert.Equal(t, CodeInvalidInput, InvalidInput("x").Code)
	assert.Equal(t, "charts export failed: boom", ExportFailed("charts", stderrors.New("boom")).Error())
}
