package cmd

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/mphflow/goic/field"
	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/types"
)

func TestWriteICFile(t *testing.T) {
	var (
		err error
		g   = mesh.NewUniform(types.GEOM_Cartesian, [3]int{4, 2, 1},
			[3]float64{0, -1, 0}, [3]float64{2, 1, 0})
		q        = field.NewPrimitive(g.NumCells(), 3)
		owners   = field.NewOwnership(g.NumCells())
		fileName = filepath.Join(t.TempDir(), "test.ic")
	)
	q.Set(0, 5, 42.)
	q.Set(2, 0, -1.5)
	owners.Claim(5, 2)
	WriteICFile(g, q, owners, fileName)

	file, err := os.Open(fileName)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	var (
		nDims, nVars int64
		counts       [3]int64
		xcc          [4]float64
		ycc          [2]float64
		zcc          [1]float64
	)
	binary.Read(file, binary.LittleEndian, &nDims)
	binary.Read(file, binary.LittleEndian, &counts)
	binary.Read(file, binary.LittleEndian, &xcc)
	binary.Read(file, binary.LittleEndian, &ycc)
	binary.Read(file, binary.LittleEndian, &zcc)
	binary.Read(file, binary.LittleEndian, &nVars)
	assert.Equal(t, nDims, int64(2))
	assert.Equal(t, counts, [3]int64{4, 2, 1})
	assert.Equal(t, xcc, [4]float64{0.25, 0.75, 1.25, 1.75})
	assert.Equal(t, ycc, [2]float64{-0.5, 0.5})
	assert.Equal(t, nVars, int64(3))
	vars := make([][]float64, nVars)
	for n := range vars {
		vars[n] = make([]float64, g.NumCells())
		binary.Read(file, binary.LittleEndian, &vars[n])
	}
	assert.Equal(t, vars[0][5], 42.)
	assert.Equal(t, vars[2][0], -1.5)
	ids := make([]int64, g.NumCells())
	binary.Read(file, binary.LittleEndian, &ids)
	assert.Equal(t, ids[5], int64(2))
	assert.Equal(t, ids[0], int64(0))
}
