package container

import (
	"fmt"

	"github.com/shuldan/kernel/pkg/contracts"
	"github.com/shuldan/kernel/pkg/errors"
)

// ApplyManifest registers the bindings described under the "container" key:
//
//	container:
//	  bindings:              # abstract: type name, built fresh each time
//	    app.Notifier: "*app.MailNotifier"
//	  shared:                # abstract: type name, or empty to autowire itself
//	    "*app.Mailer": ""
//	  aliases:               # alias: abstract
//	    mailer: "*app.Mailer"
//
// Type names must be known to the container. Every entry is applied; the
// failures are joined.
func ApplyManifest(c contracts.DIContainer, cfg contracts.Config) error {
	manifest, ok := cfg.GetSub(contracts.ContainerManifestKey)
	if !ok {
		return nil
	}

	var errs []error
	for _, section := range []struct {
		key    string
		shared bool
	}{{"bindings", false}, {"shared", true}} {
		for _, entry := range entries(manifest, section.key) {
			var factory any
			if entry.value != "" {
				factory = entry.value
			}
			if err := c.Bind(entry.key, factory, section.shared); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, entry := range entries(manifest, "aliases") {
		if err := c.Alias(entry.value, entry.key); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type manifestEntry struct {
	key   string
	value string
}

func entries(cfg contracts.Config, key string) []manifestEntry {
	section, ok := cfg.GetSub(key)
	if !ok {
		return nil
	}

	// Abstracts contain dots, so values are read from the raw section rather
	// than through dotted paths.
	raw := section.All()
	keys := section.Keys("")
	out := make([]manifestEntry, len(keys))
	for i, k := range keys {
		out[i] = manifestEntry{key: k}
		if v := raw[k]; v != nil {
			out[i].value = fmt.Sprint(v)
		}
	}
	return out
}
