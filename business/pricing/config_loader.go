package pricing

import "context"

// loadConfigForItem reads per-item overrides from the config repo, falling
// back to the service defaults. Zero-valued override fields keep the
// default so a partial row never zeroes out a sane setting.
func (s *PricingService) loadConfigForItem(ctx context.Context, itemID string) Config {
	cfg := s.defaultCfg

	if s.cfgRepo == nil {
		return cfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, itemID)
	if err != nil || !ok {
		return cfg
	}

	if dbCfg.Explore > 0 {
		cfg.Explore = dbCfg.Explore
	}
	if dbCfg.Lambda > 0 {
		cfg.Lambda = dbCfg.Lambda
	}
	if dbCfg.MinObservations > 0 {
		cfg.MinObservations = dbCfg.MinObservations
	}
	if dbCfg.MinMargin > 0 {
		cfg.MinMargin = dbCfg.MinMargin
	}
	if dbCfg.ConversionFloor > 0 {
		cfg.ConversionFloor = dbCfg.ConversionFloor
	}
	if dbCfg.GridLowerMargin > 0 {
		cfg.GridLowerMargin = dbCfg.GridLowerMargin
	}
	if dbCfg.GridUpperMargin > 0 {
		cfg.GridUpperMargin = dbCfg.GridUpperMargin
	}
	if dbCfg.GridMinCandidates > 0 {
		cfg.GridMinCandidates = dbCfg.GridMinCandidates
	}

	return cfg
}
