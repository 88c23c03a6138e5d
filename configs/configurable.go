package configs

// Configurable marks typed config values decoded from loader contents.
type Configurable interface {
	ConfigExpr() string
}
