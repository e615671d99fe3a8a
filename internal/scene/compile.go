package scene

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// CompileFile loads and compiles a CUE scene file, then validates it.
func CompileFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "scene", Message: err.Error()}
	}

	s, err := Compile(v.LookupPath(cue.ParsePath("scene")))
	if err != nil {
		return nil, err
	}
	if verrs := s.Validate(); len(verrs) > 0 {
		return nil, verrs[0]
	}
	return s, nil
}

// Compile parses a CUE value into a Scene. The value must be the
// scene struct itself; missing optional fields fall back to Default.
func Compile(v cue.Value) (*Scene, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "scene", Message: "scene struct is required"}
	}
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "scene", Message: err.Error(), Pos: v.Pos()}
	}

	s := Default()

	region, err := requiredString(v, "region")
	if err != nil {
		return nil, err
	}
	s.Region = region

	boundary, err := requiredString(v, "boundary")
	if err != nil {
		return nil, err
	}
	s.Boundary = boundary

	if err := optionalFloat(v, "grid.step", &s.GridStep); err != nil {
		return nil, err
	}
	if err := optionalFloat(v, "sun.azimuth", &s.SunAzimuth); err != nil {
		return nil, err
	}
	if err := optionalFloat(v, "sun.altitude", &s.SunAltitude); err != nil {
		return nil, err
	}
	if err := optionalString(v, "dem.source", &s.Source); err != nil {
		return nil, err
	}
	if err := optionalString(v, "dem.dir", &s.DEMDir); err != nil {
		return nil, err
	}
	if err := optionalString(v, "dem.url", &s.APIBaseURL); err != nil {
		return nil, err
	}
	if err := optionalString(v, "palette", &s.Palette); err != nil {
		return nil, err
	}
	if err := optionalString(v, "out", &s.OutDir); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks field ranges. It returns every problem, not just
// the first.
func (s *Scene) Validate() []ValidationError {
	var errs []ValidationError
	if s.Region == "" {
		errs = append(errs, ValidationError{Field: "region", Message: "region is required"})
	}
	if s.Boundary == "" {
		errs = append(errs, ValidationError{Field: "boundary", Message: "boundary is required"})
	}
	if s.GridStep <= 0 {
		errs = append(errs, ValidationError{Field: "grid.step", Message: fmt.Sprintf("step must be positive, got %g", s.GridStep)})
	}
	if s.SunAzimuth < 0 || s.SunAzimuth >= 360 {
		errs = append(errs, ValidationError{Field: "sun.azimuth", Message: fmt.Sprintf("azimuth must be in [0, 360), got %g", s.SunAzimuth)})
	}
	if s.SunAltitude <= 0 || s.SunAltitude > 90 {
		errs = append(errs, ValidationError{Field: "sun.altitude", Message: fmt.Sprintf("altitude must be in (0, 90], got %g", s.SunAltitude)})
	}
	switch s.Source {
	case SourceAPI, SourceSRTM:
	default:
		errs = append(errs, ValidationError{Field: "dem.source", Message: fmt.Sprintf("source must be %q or %q, got %q", SourceAPI, SourceSRTM, s.Source)})
	}
	if s.Source == SourceSRTM && s.DEMDir == "" {
		errs = append(errs, ValidationError{Field: "dem.dir", Message: "dir is required for the srtm source"})
	}
	if s.OutDir == "" {
		errs = append(errs, ValidationError{Field: "out", Message: "out directory is required"})
	}
	return errs
}

func requiredString(v cue.Value, path string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return "", &CompileError{Field: path, Message: path + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", &CompileError{Field: path, Message: err.Error(), Pos: fv.Pos()}
	}
	return s, nil
}

func optionalString(v cue.Value, path string, dst *string) error {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return nil
	}
	s, err := fv.String()
	if err != nil {
		return &CompileError{Field: path, Message: err.Error(), Pos: fv.Pos()}
	}
	*dst = s
	return nil
}

func optionalFloat(v cue.Value, path string, dst *float64) error {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return nil
	}
	f, err := fv.Float64()
	if err != nil {
		return &CompileError{Field: path, Message: err.Error(), Pos: fv.Pos()}
	}
	*dst = f
	return nil
}
