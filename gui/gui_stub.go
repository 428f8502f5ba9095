//go:build !ebiten

package gui

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
)

// Run always fails in builds without the ebiten tag
func Run(*model.Board, *model.PatternStore, Options) error {
	return errors.New("the gui mode requires building with the 'ebiten' tag")
}
