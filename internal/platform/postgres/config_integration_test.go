//go:build integration

package postgres_test

import "github.com/phrazzld/shop-api/internal/config"

func configFor(url string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URL:                    url,
		CreateIfMissing:        false,
		MaxOpenConns:           4,
		MaxIdleConns:           2,
		ConnMaxLifetimeMinutes: 1,
	}
}
