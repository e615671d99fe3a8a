package scene

// Elevation sources a scene may select.
const (
	SourceAPI  = "api"  // remote point-lookup service
	SourceSRTM = "srtm" // local .hgt tile directory
)

// DefaultAPIBaseURL is the public elevation lookup endpoint used when
// a scene selects the API source without overriding the URL.
const DefaultAPIBaseURL = "https://api.open-elevation.com"

// Scene is one fully resolved run configuration.
type Scene struct {
	// Region is the display name, used for plot titles and slugged
	// into artifact filenames.
	Region string `json:"region"`

	// Boundary is the path to the GeoJSON boundary file.
	Boundary string `json:"boundary"`

	// GridStep is the sampling step in degrees.
	GridStep float64 `json:"grid_step"`

	// SunAzimuth and SunAltitude position the light source, degrees.
	SunAzimuth  float64 `json:"sun_azimuth"`
	SunAltitude float64 `json:"sun_altitude"`

	// Source is SourceAPI or SourceSRTM.
	Source string `json:"source"`

	// DEMDir is the tile directory; required when Source is srtm.
	DEMDir string `json:"dem_dir,omitempty"`

	// APIBaseURL overrides the lookup endpoint for the api source.
	APIBaseURL string `json:"api_base_url,omitempty"`

	// Palette is an optional YAML color ramp path; empty selects the
	// built-in terrain ramp.
	Palette string `json:"palette,omitempty"`

	// OutDir receives all artifacts.
	OutDir string `json:"out_dir"`
}

// Default returns a scene with every optional field at its flag
// default. Region and Boundary stay empty; callers fill them.
func Default() Scene {
	return Scene{
		GridStep:    0.01,
		SunAzimuth:  315,
		SunAltitude: 45,
		Source:      SourceAPI,
		APIBaseURL:  DefaultAPIBaseURL,
		OutDir:      "./out",
	}
}

// Slugged returns the artifact filename stem for this scene's region.
func (s *Scene) Slugged() string {
	return Slug(s.Region)
}
