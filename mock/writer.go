package mock

import (
	"io"

	"github.com/Akira-YMZK/generator"
)

var _ generator.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of generator.ReportWriter.
type ReportWriter struct {
	WriteFn func(w io.Writer, tables []generator.ReportTable) error
}

func (rw *ReportWriter) Write(w io.Writer, tables []generator.ReportTable) error {
	return rw.WriteFn(w, tables)
}
