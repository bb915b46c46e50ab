package app

import (
	"github.com/vk/modelopt/internal/registry"
	"github.com/vk/modelopt/models/dummy"
	"github.com/vk/modelopt/models/hadcm3"
	"github.com/vk/modelopt/models/mitgcm"
	"github.com/vk/modelopt/models/ukesm"
)

// DefaultModel is the model type used when none is selected.
const DefaultModel = ukesm.Name

// coreModules is the definitive list of all models that are compiled into
// the binary.
var coreModules = []registry.Module{
	&dummy.Module{},
	&hadcm3.Module{},
	&mitgcm.Module{},
	&ukesm.Module{},
}
