package model

// AppConfig holds application-wide preferences and the default project
// settings applied to a newly created project, mirroring the teacher's
// CutSettings-to-AppConfig split.
type AppConfig struct {
	DefaultRoundingStepMm    int               `json:"default_rounding_step_mm"`
	DefaultKerfMm            int               `json:"default_kerf_mm"`
	DefaultMinLeftoverMm     int               `json:"default_min_leftover_mm"`
	DefaultBeamDepthMm       int               `json:"default_beam_depth_mm"`
	DefaultAllowOffcuts      bool              `json:"default_allow_offcuts"`
	DefaultOptimizationLevel OptimizationLevel `json:"default_optimization_level"`
	DefaultInventoryStrategy InventoryStrategy `json:"default_inventory_strategy"`

	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig matching DefaultProjectSettings.
func DefaultAppConfig() AppConfig {
	d := DefaultProjectSettings()
	return AppConfig{
		DefaultRoundingStepMm:    d.RoundingStepMm,
		DefaultKerfMm:            d.KerfMm,
		DefaultMinLeftoverMm:     d.MinLeftoverMm,
		DefaultBeamDepthMm:       d.BeamDepthMm,
		DefaultAllowOffcuts:      d.AllowOffcuts,
		DefaultOptimizationLevel: d.OptimizationLevel,
		DefaultInventoryStrategy: d.InventoryStrategy,
		RecentProjects:           []string{},
	}
}

// ApplyToSettings copies this config's defaults into a ProjectSettings,
// used when creating a new project so it inherits saved preferences.
func (c AppConfig) ApplyToSettings(s *ProjectSettings) {
	s.RoundingStepMm = c.DefaultRoundingStepMm
	s.KerfMm = c.DefaultKerfMm
	s.MinLeftoverMm = c.DefaultMinLeftoverMm
	s.BeamDepthMm = c.DefaultBeamDepthMm
	s.AllowOffcuts = c.DefaultAllowOffcuts
	s.OptimizationLevel = c.DefaultOptimizationLevel
	s.InventoryStrategy = c.DefaultInventoryStrategy
}
