package config

// ChainLoader merges the maps of its loaders in order; later loaders win
// key by key. Failing loaders are skipped unless every loader fails.
type ChainLoader struct {
	loaders []Loader
}

func NewChainLoader(loaders ...Loader) *ChainLoader {
	return &ChainLoader{loaders: loaders}
}

func (c *ChainLoader) Load() (map[string]any, error) {
	final := make(map[string]any)
	var lastErr error

	for _, loader := range c.loaders {
		values, err := loader.Load()
		if err != nil {
			lastErr = err
			continue
		}
		mergeMaps(final, values)
	}

	if len(final) == 0 {
		if lastErr == nil {
			return nil, ErrNoConfigSource.WithDetail("loader", "chain")
		}
		return nil, ErrNoConfigSource.WithDetail("loader", "chain").WithCause(lastErr)
	}
	return final, nil
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		vMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMaps(dstMap, vMap)
			continue
		}
		dst[k] = cloneDeep(vMap)
	}
}
