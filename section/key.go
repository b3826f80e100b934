// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package section

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// A Colorer is a type that returns the color
// of a water content value.
type Colorer interface {
	Color(v float64) color.Color
}

// A Key is a color key for water content classes.
type Key struct {
	classes []class
	hasGray bool
	useGray bool
}

type class struct {
	min   float64
	color color.RGBA
	gray  uint8
}

// Color returns the color of the class of a value.
// The class of a value is the class
// with the largest lower bound
// smaller or equal to the value.
// Values below the first class
// take the color of the first class.
func (k *Key) Color(v float64) color.Color {
	c := k.classes[0]
	for _, cl := range k.classes[1:] {
		if cl.min > v {
			break
		}
		c = cl
	}
	if k.useGray {
		return color.RGBA{c.gray, c.gray, c.gray, 255}
	}
	return c.color
}

// HasGrayScale returns true if a gray scale is defined
// for the classes.
func (k *Key) HasGrayScale() bool {
	return k.hasGray
}

// SetGray sets the key to use the gray scale.
// It is ignored if the key has no gray scale.
func (k *Key) SetGray(gray bool) {
	k.useGray = gray && k.hasGray
}

// ReadKey reads a key file used to define the colors
// of water content classes.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-min	the lower bound of the class, in percent
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Optionally it can contain the following columns:
//
//	-gray:  for a gray scale value
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	min	color	gray	comment
//	0	165, 0, 38	20	dry
//	10	253, 174, 97	80	moist
//	20	171, 217, 233	160	wet
//	30	49, 54, 149	240	saturated
func ReadKey(r io.Reader) (*Key, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range []string{"min", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := &Key{}
	_, k.hasGray = fields["gray"]
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "min"
		m, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "color"
		val := strings.Split(row[fields[f]], ",")
		if len(val) != 3 {
			return nil, fmt.Errorf("on row %d: field %q: found %d values, want 3", ln, f, len(val))
		}
		var rgb [3]uint8
		for i, n := range []string{"red", "green", "blue"} {
			c, err := strconv.Atoi(strings.TrimSpace(val[i]))
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q [%s value]: %v", ln, f, n, err)
			}
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("on row %d: field %q [%s value]: invalid value %d", ln, f, n, c)
			}
			rgb[i] = uint8(c)
		}
		cl := class{
			min:   m,
			color: color.RGBA{rgb[0], rgb[1], rgb[2], 255},
		}

		f = "gray"
		if _, ok := fields[f]; ok {
			g, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
			if g < 0 || g > 255 {
				return nil, fmt.Errorf("on row %d: field %q: invalid value %d", ln, f, g)
			}
			cl.gray = uint8(g)
		}
		k.classes = append(k.classes, cl)
	}
	if len(k.classes) == 0 {
		return nil, fmt.Errorf("no classes defined")
	}

	slices.SortStableFunc(k.classes, func(a, b class) int {
		switch {
		case a.min < b.min:
			return -1
		case a.min > b.min:
			return 1
		}
		return 0
	})
	return k, nil
}

// ReadKeyFile reads a key file.
func ReadKeyFile(name string) (*Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := ReadKey(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return k, nil
}
