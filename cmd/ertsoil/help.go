// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(cellFilesGuide)
	app.Add(projectGuide)
	app.Add(temperatureFilesGuide)
	app.Add(tx0FilesGuide)
}

var projectGuide = &command.Command{
	Usage: "project",
	Short: "about project files",
	Long: `
Ertsoil requires several files and directories to convert, calibrate, and
process resistivity surveys. To reduce the burden of keeping track of many
files, a single project file is used to hold the reference of all files and
directories required in the analysis. This guide explains the structure of
the file, but most of the time, the best and most secure way to edit or view
this file is by using the command 'ertsoil prj'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file or directory

Here is an example file:

	# ertsoil project files
	dataset	path
	surveys	raw
	data	tables
	temperature	soil-temp.tab
	detailed	calibrated/detailed
	simplified	calibrated/simplified
	params	params.tab

The valid datasets are:

- Raw surveys. Defined by the dataset keyword "surveys". A directory with the
  raw survey dumps of the instrument (tx0 files). Type 'ertsoil help
  tx0-files' for a description of the format.
- Normalized tables. Defined by the dataset keyword "data". A directory with
  the normalized measurement tables written by 'ertsoil convert'.
- Temperature log. Defined by the dataset keyword "temperature". A
  tab-delimited file with the soil temperature profiles. Type 'ertsoil help
  temperature-files' for a description of the format.
- Detailed tables. Defined by the dataset keyword "detailed". A directory for
  the calibrated tables with the interpolated temperature of each
  measurement, written by 'ertsoil calib'.
- Simplified tables. Defined by the dataset keyword "simplified". A directory
  for the calibrated tables used by the inversion engine, written by 'ertsoil
  calib'.
- Parameters. Defined by the dataset keyword "params". A tab-delimited file
  with the calibration parameters. The recommended way to edit this file is
  by using the command 'ertsoil param'.
- Temperature control points. Defined by the dataset keyword "tempfield". A
  tab-delimited file with the temperature at different depths, used to
  estimate the water content. Type 'ertsoil help cell-files' for a
  description of the format.
- Water content. Defined by the dataset keyword "water". A directory for the
  water content tables written by 'ertsoil water'.

Paths of directories that do not exist will be created when writing files.
	`,
}

var tx0FilesGuide = &command.Command{
	Usage: "tx0-files",
	Short: "about raw survey dumps",
	Long: `
Raw survey dumps (tx0 files) are text files exported by the resistivity
meter. Ertsoil reads the electrode positions and the measurements of the file
and ignores the rest of the instrument header.

Electrode positions are lines of the form:

	* Electrode [1] = 0.000 0.000 0.000

between the lines "* Electrode positions" and "* Remote electrode positions".
The first and third values are used as the x and z coordinates.

Measurements are read after the "* Data" line of the file, surrounded by
lines of asterisks. Each measurement is a line of space separated fields,
with at least 22 fields. The electrode indices (a, b, m, n) are taken from
the fields 2 to 5, the apparent resistivity from the field 11, and the x and
z pseudo-coordinates from the fields 19 and 21 (as counted from 1). The
fields of the coordinates can be changed with the command 'ertsoil param'.

Measurements with a non-numeric resistivity or depth are dropped. By default
the electrode indices are rebased so the smallest current electrode is 1.

The date of a survey is taken from the file name. Valid names include
"2024-07-10_12-00-00.tx0", "10_07_2024.tx0", and "2024_07_10.tx0". Files
converted with 'ertsoil convert' keep the name of the raw dump, with the
extension ".txt".
	`,
}

var temperatureFilesGuide = &command.Command{
	Usage: "temperature-files",
	Short: "about soil temperature logs",
	Long: `
A soil temperature log is a tab-delimited file with the temperatures measured
by a set of sensors at -4, -3.5, -3, -1.5, -1, and -0.5 m.

The file must have a header. The timestamp is taken from the column "time",
or the first column if there is no column with that name. If the header has
columns named with the sensor depths, those columns are used, otherwise the
six columns after the timestamp are used.

Here is an example file:

	time	-4	-3.5	-3	-1.5	-1	-0.5
	10/07/2024 12:00:00 PM	16.2	16.5	16.9	18.1	18.8	19.6
	10/07/2024 01:00:00 PM	16.2	16.5	16.9	18.1	18.9	19.9

Timestamps can be written with the day first ("10/07/2024 12:00:00 PM", or
"10-07-2024 12:00") or in ISO format ("2024-07-10 12:00:00"). Rows with an
invalid timestamp are excluded, and empty or invalid temperatures are ignored.

With the "day" matching mode, the first row of each day is the profile of
that day. With the "time" matching mode, every row is a profile, and the
profile closest in time to a survey is used.

Lines starting with '#' are ignored. The command 'ertsoil temp filter' keeps
only the rows of the days with surveys.
	`,
}

var cellFilesGuide = &command.Command{
	Usage: "cell-files",
	Short: "about inverted cell files",
	Long: `
To estimate the water content, ertsoil reads the cells of an inverted
resistivity section as a tab-delimited file with the following fields:

	- cell         the cell identifier
	- x            the x coordinate of the cell center
	- y            the depth of the cell center (negative below the surface)
	- resistivity  the inverted resistivity of the cell

Here is an example file:

	# inverted mesh cells
	cell	x	y	resistivity
	1	0.25	-0.12	152.3
	2	0.75	-0.12	148.9

The temperature of each cell is interpolated from a set of temperature
control points, defined in a tab-delimited file with the fields:

	- depth        the depth of the control point, in meters
	- temperature  the temperature at that depth, in °C

Here is an example file:

	# temperature control points
	depth	temperature
	0	19.5
	-4	14.2

Below the deepest control point, or above the shallowest one, the
temperature of that point is used.

The output of 'ertsoil water' is a tab-delimited file with the fields of the
cell file, and the interpolated temperature, the corrected resistivity, and
the water content (in percent) of each cell. Undefined values are written as
empty fields.
	`,
}
