// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"log"

	"github.com/js-arias/ertsoil/calparam"
	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

// Dir returns the path of a dataset
// that must be defined in the project.
func (p *Project) Dir(set Dataset) (string, error) {
	name := p.Path(set)
	if name == "" {
		return "", fmt.Errorf("%s not defined in project %q", set, p.name)
	}
	return name, nil
}

// Params reads the calibration parameters
// as defined in a project.
// If the project does not define a parameter file,
// the default parameters are returned.
func (p *Project) Params() (*calparam.P, error) {
	name := p.Path(Params)
	if name == "" {
		return calparam.New(""), nil
	}
	return calparam.Read(name)
}

// Temperature reads the temperature log
// as defined in a project,
// and returns a series with the given mode.
//
// As a missing temperature log
// only prevents the calibration of the surveys,
// a failure is logged
// and an empty series is returned.
func (p *Project) Temperature(m tempseries.Mode, logger *log.Logger) tempseries.Series {
	name := p.Path(Temperature)
	if name == "" {
		if logger != nil {
			logger.Printf("temperature: log not defined in project %q", p.name)
		}
		return tempseries.New(nil, m)
	}
	return tempseries.Load(name, m, logger)
}

// TempField reads the temperature control points
// as defined in a project.
func (p *Project) TempField() ([]water.Point, error) {
	name := p.Path(TempField)
	if name == "" {
		return nil, fmt.Errorf("temperature control points not defined in project %q", p.name)
	}
	return water.ReadPointFile(name)
}
