package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if c.Yandex.AgentTimeout <= 0 {
		return fmt.Errorf("yandex.agent_timeout must be > 0 (got %v)", c.Yandex.AgentTimeout)
	}
	if c.Yandex.LookupTimeout <= 0 {
		return fmt.Errorf("yandex.lookup_timeout must be > 0 (got %v)", c.Yandex.LookupTimeout)
	}

	return nil
}

func (e *EngineConfig) validate() error {
	if e.TrainingBatchSize <= 0 {
		return fmt.Errorf("training_batch_size must be > 0 (got %d)", e.TrainingBatchSize)
	}
	if e.TestBatchSize <= 0 {
		return fmt.Errorf("test_batch_size must be > 0 (got %d)", e.TestBatchSize)
	}
	if e.AnalysisMinWords <= 0 {
		return fmt.Errorf("analysis_min_words must be > 0 (got %d)", e.AnalysisMinWords)
	}
	if e.AnalysisMaxChars <= e.AnalysisMinWords {
		return fmt.Errorf("analysis_max_chars must exceed analysis_min_words (got %d)", e.AnalysisMaxChars)
	}
	if e.MeaningsPerWord < 0 {
		return fmt.Errorf("meanings_per_word must be >= 0 (got %d)", e.MeaningsPerWord)
	}
	return nil
}
