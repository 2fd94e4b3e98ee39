package templating

import "github.com/byte4ever/submerge/config"

// Tags exposes tag resolution for tests.
func (en *Engine) Tags(cfg *config.Config) (string, string) {
	return en.tags(cfg)
}
