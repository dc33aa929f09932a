/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	input "github.com/mphflow/goic/InputParameters"
	"github.com/mphflow/goic/field"
	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/patches"
	"github.com/mphflow/goic/utils"
	"github.com/mphflow/goic/variables"
)

type ModelIC struct {
	CaseFile   string
	OutputFile string
	Graph      bool
	GraphDelay time.Duration
	Profile    bool
	Verbose    bool
	Parallel   int
}

// ICCmd represents the ic command
var ICCmd = &cobra.Command{
	Use:   "ic",
	Short: "Generate the initial condition field from a patch case file",
	Long: `
Applies the case file's patch list in declared order: each patch claims
cells through its shape's containment test, blends its state into the
primitive field, and records ownership so later patches can respect or
override earlier ones. Immersed boundary patches stamp the marker grid,

goic ic -I case.yaml -o case.ic`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("ic called")
		mic := &ModelIC{}
		if mic.CaseFile, err = cmd.Flags().GetString("caseFile"); err != nil {
			panic(err)
		}
		mic.OutputFile, _ = cmd.Flags().GetString("outputFile")
		mic.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		mic.GraphDelay = time.Duration(dr) * time.Millisecond
		mic.Profile, _ = cmd.Flags().GetBool("profile")
		mic.Verbose, _ = cmd.Flags().GetBool("verbose")
		mic.Parallel, _ = cmd.Flags().GetInt("parallel")
		ip := processInput(mic)
		RunIC(mic, ip)
	},
}

func processInput(mic *ModelIC) (ip *input.ICParameters) {
	var (
		err error
	)
	if len(mic.CaseFile) == 0 {
		err = fmt.Errorf("must supply a case file (-I, --caseFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Uniform Water with Air Bubble"
Cells: [100, 100, 0]
DomainLo: [0., 0., 0.]
DomainHi: [1., 1., 0.]
ModelEqns: 2
NumFluids: 2
Fluids:
  - Gamma: 0.16   # 1/(gamma-1)
    PiInf: 3430.
  - Gamma: 2.5
    PiInf: 0.
Patches:
  - Shape: rectangle
    Centroid: [0.5, 0.5, 0.]
    Length: [1., 1., 0.]
    Pressure: 101325.
    AlphaRho: [1000., 0.]
    Alpha: [1., 0.]
  - Shape: circle
    Centroid: [0.5, 0.5, 0.]
    Radius: 0.1
    Smoothen: true
    SmoothCoeff: 0.5
    SmoothPatch: 1
    Pressure: 101325.
    AlphaRho: [0., 1.2]
    Alpha: [0., 1.]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mic.CaseFile); err != nil {
		panic(err)
	}
	ip = &input.ICParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(ICCmd)
	ICCmd.Flags().StringP("caseFile", "I", "", "YAML case file with grid, fluids and patch list")
	ICCmd.Flags().StringP("outputFile", "o", "", "binary output file for the generated field")
	ICCmd.Flags().BoolP("graph", "g", false, "plot the density profile along the domain midline")
	ICCmd.Flags().IntP("delay", "d", 10000, "milliseconds to hold the plot window")
	ICCmd.Flags().Bool("profile", false, "write a CPU profile of the generation pass")
	ICCmd.Flags().BoolP("verbose", "v", false, "per-patch progress and memory reporting")
	ICCmd.Flags().IntP("parallel", "p", 0, "goroutines per patch sweep, 0 selects NumCPU")
}

func RunIC(mic *ModelIC, ip *input.ICParameters) {
	var (
		g   = ip.BuildGrid()
		cfg = ip.BuildConfig(g, mic.Parallel, mic.Verbose)
	)
	ip.Print()
	fmt.Printf("%s\n", g.Print())
	gen := patches.NewGenerator(g, variables.NewMixture(g, cfg.Layout), cfg)
	if mic.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	start := time.Now()
	gen.Run(ip.BuildPatches())
	gen.RunIB(ip.BuildIBPatches())
	fmt.Printf("Processed %d patches in %s\n",
		len(ip.Patches)+len(ip.IBPatches), time.Since(start))
	if mic.Verbose {
		fmt.Printf("%s\n", utils.GetMemUsage())
	}
	if len(mic.OutputFile) != 0 {
		WriteICFile(g, gen.Q, gen.Owners, mic.OutputFile)
	}
	if mic.Graph {
		plotCenterline(g, gen.Q, cfg.Layout, mic.GraphDelay)
	}
}

/*
WriteICFile dumps the generated field in little-endian binary: dimension
count, cell counts, the three cell-center coordinate arrays, then one
array per primitive variable and finally the ownership ids.
*/
func WriteICFile(g *mesh.Grid, q *field.Primitive, owners *field.Ownership, fileName string) {
	var (
		err  error
		file *os.File
	)
	file, err = os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	fmt.Printf("Number of Cells: %d\n", g.NumCells())
	fmt.Printf("Number of Variables: %d\n", q.NumVars())
	binary.Write(file, binary.LittleEndian, int64(g.Dims()))
	binary.Write(file, binary.LittleEndian, [3]int64{int64(g.Nx), int64(g.Ny), int64(g.Nz)})
	binary.Write(file, binary.LittleEndian, g.Xcc.DataP)
	binary.Write(file, binary.LittleEndian, g.Ycc.DataP)
	binary.Write(file, binary.LittleEndian, g.Zcc.DataP)
	binary.Write(file, binary.LittleEndian, int64(q.NumVars()))
	for n := 0; n < q.NumVars(); n++ {
		binary.Write(file, binary.LittleEndian, q.Vars[n].DataP)
	}
	ids := make([]int64, owners.NumCells)
	for idx, id := range owners.ID {
		ids[idx] = int64(id)
	}
	binary.Write(file, binary.LittleEndian, ids)
	fmt.Printf("Wrote solution field to %s\n", fileName)
}

// plotCenterline charts the mixture density along the x row through the
// domain center, the quickest visual sanity check of a generated field.
func plotCenterline(g *mesh.Grid, q *field.Primitive, lay variables.Layout, delay time.Duration) {
	var (
		j, k = g.Ny / 2, g.Nz / 2
		x    = g.Xcc.DataP
		f    = make([]float64, g.Nx)
	)
	for i := 0; i < g.Nx; i++ {
		idx := g.Index(i, j, k)
		for n := lay.ContBeg(); n < lay.ContEnd(); n++ {
			f[i] += q.Vars[n].DataP[idx]
		}
	}
	fv := utils.NewVector(g.Nx, f)
	fmin, fmax := fv.Min(), fv.Max()
	if fmin == fmax { // uniform field still gets a visible axis range
		fmax = fmin + 1.
	}
	chart := utils.NewLineChart(1920, 1080, x[0], x[len(x)-1], fmin, fmax)
	chart.Plot(delay, x, f, 0.7, "density")
}
