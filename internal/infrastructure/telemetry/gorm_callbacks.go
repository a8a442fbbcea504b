package telemetry

import "gorm.io/gorm"

type gormHook struct {
	operation string
	register  func(name string, fn func(*gorm.DB)) error
}

// registerAround installs before and after callbacks named prefix:before_<op>
// and prefix:after_<op> around each GORM processor. Either callback may be nil.
func registerAround(db *gorm.DB, prefix string, before func(*gorm.DB), after func(operation string, db *gorm.DB)) error {
	cb := db.Callback()
	if before != nil {
		hooks := []gormHook{
			{"create", cb.Create().Before("gorm:create").Register},
			{"query", cb.Query().Before("gorm:query").Register},
			{"update", cb.Update().Before("gorm:update").Register},
			{"delete", cb.Delete().Before("gorm:delete").Register},
			{"row", cb.Row().Before("gorm:row").Register},
			{"raw", cb.Raw().Before("gorm:raw").Register},
		}
		for _, h := range hooks {
			if err := h.register(prefix+":before_"+h.operation, before); err != nil {
				return err
			}
		}
	}
	if after != nil {
		hooks := []gormHook{
			{"create", cb.Create().After("gorm:create").Register},
			{"query", cb.Query().After("gorm:query").Register},
			{"update", cb.Update().After("gorm:update").Register},
			{"delete", cb.Delete().After("gorm:delete").Register},
			{"row", cb.Row().After("gorm:row").Register},
			{"raw", cb.Raw().After("gorm:raw").Register},
		}
		for _, h := range hooks {
			op := h.operation
			if err := h.register(prefix+":after_"+op, func(tx *gorm.DB) { after(op, tx) }); err != nil {
				return err
			}
		}
	}
	return nil
}
