// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package calparam_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/js-arias/ertsoil/calparam"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

func TestCalParam(t *testing.T) {
	name := "tmp-calibration-parameters-for-test.tab"
	p := calparam.New(name)
	testParam(t, p, nil, name)

	sets := map[calparam.Param]string{
		calparam.Layout: "noxz",
		calparam.Offset: "false",
		calparam.XField: "16",
		calparam.Mode:   "time",
		calparam.Law:    "alternate",
	}
	for k, v := range sets {
		if err := p.Set(k, v); err != nil {
			t.Fatalf("set %s: unexpected error: %v", k, err)
		}
	}

	defer os.Remove(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := calparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testParam(t, np, p, name)

	want := survey.Options{
		Layout: survey.WithoutXZ,
		Offset: false,
		XField: 16,
		ZField: 20,
	}
	if o := np.Options(); o != want {
		t.Errorf("options: got %+v, want %+v", o, want)
	}
	if np.Mode() != tempseries.ByTime {
		t.Errorf("mode: got %v, want %v", np.Mode(), tempseries.ByTime)
	}
	if np.Law() != water.AltLaw {
		t.Errorf("law: got %v, want %v", np.Law(), water.AltLaw)
	}
}

func testParam(t testing.TB, p, want *calparam.P, name string) {
	t.Helper()

	if want == nil {
		want = calparam.New(name)
	}

	if p.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", p.Name(), want.Name())
	}
	if p.Options() != want.Options() {
		t.Errorf("options: got %+v, want %+v", p.Options(), want.Options())
	}
	if p.Mode() != want.Mode() {
		t.Errorf("mode: got %v, want %v", p.Mode(), want.Mode())
	}
	if p.Law() != want.Law() {
		t.Errorf("law: got %v, want %v", p.Law(), want.Law())
	}
	if !reflect.DeepEqual(p.Values(), want.Values()) {
		t.Errorf("values: got %v, want %v", p.Values(), want.Values())
	}
}

func TestInvalidParam(t *testing.T) {
	tests := map[string]string{
		"layout":    "parameter\tvalue\nlayout\tcolumns\n",
		"offset":    "parameter\tvalue\noffset\tmaybe\n",
		"same xz":   "parameter\tvalue\nxfield\t20\n",
		"xfield":    "parameter\tvalue\nxfield\t30\n",
		"mode":      "parameter\tvalue\nmode\tweekly\n",
		"law":       "parameter\tvalue\nb\t0.5\n",
		"unknown":   "parameter\tvalue\nsteps\t360\n",
		"no header": "layout\txz\n",
	}

	dir := t.TempDir()
	for name, in := range tests {
		f := filepath.Join(dir, name+".tab")
		if err := os.WriteFile(f, []byte(in), 0o644); err != nil {
			t.Fatalf("unable to write file: %v", err)
		}
		if _, err := calparam.Read(f); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
