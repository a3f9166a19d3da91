package cmd

import (
	"fmt"

	"github.com/iksnae/webscraper-chat/internal"
)

// openStore opens the configured backend and loads the chat state. The
// returned close func releases the backend and writes the metrics
// textfile when one is configured.
func openStore() (*internal.SessionStore, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration not loaded")
	}

	kv, err := internal.OpenKeyValueStore(cfg.Storage.KVOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	internal.LogDebug("Opened %s storage at %s", kv.Name(), cfg.Storage.Path)

	metrics := internal.NewStoreMetrics()
	store := internal.NewSessionStore(kv,
		internal.WithStorageKey(cfg.Storage.Key),
		internal.WithMetrics(metrics),
	)
	if _, err := store.Load(); err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("failed to load chat state: %w", err)
	}

	closeFn := func() {
		if cfg.Metrics.Textfile != "" {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				internal.LogWarn("%v", err)
			}
		}
		if err := kv.Close(); err != nil {
			internal.LogWarn("Failed to close storage: %v", err)
		}
	}
	return store, closeFn, nil
}

// resolveSessionID returns args[0] or, when absent, the current session
func resolveSessionID(store *internal.SessionStore, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	current, ok := store.GetCurrentSession()
	if !ok {
		return "", fmt.Errorf("no current session (pass a session ID or run 'webscraper-chat use <id>')")
	}
	return current.ID, nil
}
