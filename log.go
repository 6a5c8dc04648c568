package tieralloc

import "github.com/bnclabs/golog"

func init() {
	log.SetLogger(nil, Defaultsettings())
}
