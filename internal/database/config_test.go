package database

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_DatabasePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "empty path should fail",
			path:        "",
			expectError: true,
			errorMsg:    "database path cannot be empty",
		},
		{
			name:        "memory database should pass",
			path:        ":memory:",
			expectError: false,
		},
		{
			name:        "valid file path should pass",
			path:        "test.db",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			if tt.path == ":memory:" {
				config.JournalMode = "MEMORY" // Use compatible journal mode for in-memory
			}
			config.Path = tt.path

			err := config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_ConnectionSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modifier    func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "negative maxConnections should fail",
			modifier: func(c *Config) {
				c.MaxConnections = -1
			},
			expectError: true,
			errorMsg:    "maxConnections must be positive",
		},
		{
			name: "zero maxConnections should fail",
			modifier: func(c *Config) {
				c.MaxConnections = 0
			},
			expectError: true,
			errorMsg:    "maxConnections must be positive",
		},
		{
			name: "negative maxIdleConns should fail",
			modifier: func(c *Config) {
				c.MaxIdleConns = -1
			},
			expectError: true,
			errorMsg:    "maxIdleConns cannot be negative",
		},
		{
			name: "maxIdleConns > maxConnections should fail",
			modifier: func(c *Config) {
				c.MaxConnections = 5
				c.MaxIdleConns = 10
			},
			expectError: true,
			errorMsg:    "maxIdleConns (10) cannot be greater than maxConnections (5)",
		},
		{
			name: "negative connMaxLifetime should fail",
			modifier: func(c *Config) {
				c.ConnMaxLifetime = -time.Hour
			},
			expectError: true,
			errorMsg:    "connMaxLifetime cannot be negative",
		},
		{
			name: "negative connMaxIdleTime should fail",
			modifier: func(c *Config) {
				c.ConnMaxIdleTime = -time.Minute
			},
			expectError: true,
			errorMsg:    "connMaxIdleTime cannot be negative",
		},
		{
			name: "valid connection settings should pass",
			modifier: func(c *Config) {
				c.MaxConnections = 10
				c.MaxIdleConns = 5
				c.ConnMaxLifetime = time.Hour
				c.ConnMaxIdleTime = time.Minute
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modifier(config)

			err := config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_JournalMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modifier    func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "invalid journal mode should fail",
			modifier: func(c *Config) {
				c.JournalMode = "INVALID"
			},
			expectError: true,
			errorMsg:    "invalid journalMode: INVALID",
		},
		{
			name: "valid journal modes should pass",
			modifier: func(c *Config) {
				c.JournalMode = "WAL"
			},
			expectError: false,
		},
		{
			name: "WAL with in-memory database should fail",
			modifier: func(c *Config) {
				c.Path = ":memory:"
				c.JournalMode = "WAL"
			},
			expectError: true,
			errorMsg:    "journalMode cannot be WAL when using in-memory database",
		},
		{
			name: "WAL case insensitive with in-memory database should fail",
			modifier: func(c *Config) {
				c.Path = ":memory:"
				c.JournalMode = "wal"
			},
			expectError: true,
			errorMsg:    "journalMode cannot be WAL when using in-memory database",
		},
		{
			name: "MEMORY with in-memory database should pass",
			modifier: func(c *Config) {
				c.Path = ":memory:"
				c.JournalMode = "MEMORY"
			},
			expectError: false,
		},
		{
			name: "DELETE with in-memory database should pass",
			modifier: func(c *Config) {
				c.Path = ":memory:"
				c.JournalMode = "DELETE"
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modifier(config)

			err := config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_PerformanceSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modifier    func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "invalid synchronous mode should fail",
			modifier: func(c *Config) {
				c.SynchronousMode = "INVALID"
			},
			expectError: true,
			errorMsg:    "invalid synchronousMode: INVALID",
		},
		{
			name: "negative cache size should fail",
			modifier: func(c *Config) {
				c.CacheSize = -100
			},
			expectError: true,
			errorMsg:    "cacheSize must be positive",
		},
		{
			name: "zero cache size should fail",
			modifier: func(c *Config) {
				c.CacheSize = 0
			},
			expectError: true,
			errorMsg:    "cacheSize must be positive",
		},
		{
			name: "negative busy timeout should fail",
			modifier: func(c *Config) {
				c.BusyTimeout = -1000
			},
			expectError: true,
			errorMsg:    "busyTimeout cannot be negative",
		},
		{
			name: "zero busy timeout should pass",
			modifier: func(c *Config) {
				c.BusyTimeout = 0
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modifier(config)

			err := config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_EnvironmentAndLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modifier    func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name: "invalid environment should fail",
			modifier: func(c *Config) {
				c.Environment = "invalid"
			},
			expectError: true,
			errorMsg:    "invalid environment: invalid",
		},
		{
			name: "valid environments should pass",
			modifier: func(c *Config) {
				c.Environment = "development"
			},
			expectError: false,
		},
		{
			name: "invalid log level should fail",
			modifier: func(c *Config) {
				c.LogLevel = "invalid"
			},
			expectError: true,
			errorMsg:    "invalid logLevel: invalid",
		},
		{
			name: "valid log levels should pass",
			modifier: func(c *Config) {
				c.LogLevel = "debug"
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modifier(config)

			err := config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_DefaultConfigurations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		configFn func() *Config
	}{
		{
			name:     "default config should be valid",
			configFn: DefaultConfig,
		},
		{
			name:     "development config should be valid",
			configFn: DevelopmentConfig,
		},
		{
			name:     "test config should be valid",
			configFn: TestConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := tt.configFn()
			if err := config.Validate(); err != nil {
				t.Errorf("Configuration %s should be valid but got error: %v", tt.name, err)
			}
		})
	}
}

func TestConfig_GetConnectionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modifier  func(*Config)
		expected  map[string]string // expected query parameters
		pathCheck func(string) bool
	}{
		{
			name: "basic configuration",
			modifier: func(c *Config) {
				c.Path = "test.db"
				c.ForeignKeys = true
				c.JournalMode = "WAL"
				c.SynchronousMode = "NORMAL"
				c.CacheSize = 2000
				c.BusyTimeout = 30000
			},
			expected: map[string]string{
				"_foreign_keys": "on",
				"_journal_mode": "WAL",
				"_synchronous":  "NORMAL",
				"_cache_size":   "-2000",
				"_busy_timeout": "30000",
			},
			pathCheck: func(s string) bool {
				return strings.HasPrefix(s, "test.db?")
			},
		},
		{
			name: "in-memory database",
			modifier: func(c *Config) {
				c.Path = ":memory:"
				c.ForeignKeys = false
				c.JournalMode = "MEMORY"
				c.SynchronousMode = "OFF"
				c.CacheSize = 1000
				c.BusyTimeout = 0
			},
			expected: map[string]string{
				"_foreign_keys": "off",
				"_journal_mode": "MEMORY",
				"_synchronous":  "OFF",
				"_cache_size":   "-1000",
				"_busy_timeout": "0",
			},
			pathCheck: func(s string) bool {
				return strings.HasPrefix(s, ":memory:?")
			},
		},
		{
			name: "path with special characters",
			modifier: func(c *Config) {
				c.Path = "my database?.db&test=1"
				c.ForeignKeys = true
				c.JournalMode = "WAL"
				c.SynchronousMode = "FULL"
				c.CacheSize = 500
				c.BusyTimeout = 5000
			},
			expected: map[string]string{
				"_foreign_keys": "on",
				"_journal_mode": "WAL",
				"_synchronous":  "FULL",
				"_cache_size":   "-500",
				"_busy_timeout": "5000",
			},
			pathCheck: func(s string) bool {
				// Only ? and & should be escaped to prevent query parsing issues
				return strings.HasPrefix(s, "my database%3F.db%26test=1?")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modifier(config)

			connStr := config.GetConnectionString()

			if !tt.pathCheck(connStr) {
				t.Errorf("Connection string path format check failed: %s", connStr)
			}

			parts := strings.SplitN(connStr, "?", 2)
			if len(parts) != 2 {
				t.Fatalf("Connection string has no query part: %s", connStr)
			}
			values, err := url.ParseQuery(parts[1])
			if err != nil {
				t.Fatalf("Failed to parse query parameters: %v", err)
			}

			for key, expectedValue := range tt.expected {
				if actualValue := values.Get(key); actualValue != expectedValue {
					t.Errorf("Expected %s=%s, got %s=%s", key, expectedValue, key, actualValue)
				}
			}

			for key := range values {
				if _, expected := tt.expected[key]; !expected {
					t.Errorf("Unexpected parameter in connection string: %s=%s", key, values.Get(key))
				}
			}
		})
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("EXECMODE_DB_PATH", "env.db")
	t.Setenv("EXECMODE_DB_MAX_CONNECTIONS", "2")
	t.Setenv("EXECMODE_DB_JOURNAL_MODE", "DELETE")
	t.Setenv("EXECMODE_DB_AUTO_MIGRATE", "off")
	t.Setenv("EXECMODE_ENVIRONMENT", "development")

	config := DefaultConfig()
	if err := config.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment failed: %v", err)
	}

	if config.Path != "env.db" {
		t.Errorf("Expected path env.db, got %s", config.Path)
	}
	if config.MaxConnections != 2 {
		t.Errorf("Expected maxConnections 2, got %d", config.MaxConnections)
	}
	if config.JournalMode != "DELETE" {
		t.Errorf("Expected journalMode DELETE, got %s", config.JournalMode)
	}
	if config.AutoMigrate {
		t.Error("Expected autoMigrate to be disabled")
	}
	if config.Environment != "development" {
		t.Errorf("Expected environment development, got %s", config.Environment)
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	original := DefaultConfig()
	clone := original.Clone()

	clone.Path = "other.db"
	clone.MaxConnections = 99

	if original.Path == clone.Path {
		t.Error("Clone should not share path with original")
	}
	if original.MaxConnections == clone.MaxConnections {
		t.Error("Clone should not share maxConnections with original")
	}
}
