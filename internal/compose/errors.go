package compose

import "fmt"

// ProbeError reports a failure to determine the duration or streams
// of an input file. The pipeline cannot proceed without a reference
// duration, so it is always fatal.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// TrimError reports a failed trim of a background source
type TrimError struct {
	Source string
	Err    error
}

func (e *TrimError) Error() string {
	return fmt.Sprintf("trim %s: %v", e.Source, e.Err)
}

func (e *TrimError) Unwrap() error { return e.Err }

// MixError reports a failed speech/music composition
type MixError struct {
	Speech string
	Music  string
	Err    error
}

func (e *MixError) Error() string {
	return fmt.Sprintf("mix %s with %s: %v", e.Speech, e.Music, e.Err)
}

func (e *MixError) Unwrap() error { return e.Err }

// MuxError reports a failed final combination. No partial file is
// left at the output path when it is returned.
type MuxError struct {
	Output string
	Err    error
}

func (e *MuxError) Error() string {
	return fmt.Sprintf("mux %s: %v", e.Output, e.Err)
}

func (e *MuxError) Unwrap() error { return e.Err }
