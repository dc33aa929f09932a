package model

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

/*
Read loads a triangulated surface from an STL file, binary or ASCII,
autodetected. Malformed or missing files are fatal; IC generation cannot
proceed without the model geometry.
*/
func Read(filename string, verbose bool) (m *Mesh) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading STL model file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()

	if isBinarySTL(file) {
		m = readBinarySTL(file)
	} else {
		m = readASCIISTL(file)
	}
	if len(m.Tris) == 0 {
		panic(fmt.Errorf("unable to use model %s, no triangles found", filename))
	}
	if verbose {
		lo, hi := m.BoundingBox()
		fmt.Printf("Read %d triangles\n", len(m.Tris))
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\nZMin/ZMax = %5.3f, %5.3f\n",
			lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}
	return
}

// isBinarySTL applies the size heuristic: a binary STL is exactly
// 84 + 50*count bytes. An ASCII file starting with "solid" fails it.
func isBinarySTL(file *os.File) (binarySTL bool) {
	var (
		info os.FileInfo
		err  error
	)
	if info, err = file.Stat(); err != nil {
		panic(fmt.Errorf("unable to stat file %s\n %s", file.Name(), err))
	}
	size := info.Size()
	if size < 84 {
		return false
	}
	header := make([]byte, 84)
	if _, err = io.ReadFull(file, header); err != nil {
		panic(fmt.Errorf("unable to read file header %s\n %s", file.Name(), err))
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		panic(err)
	}
	count := int64(binary.LittleEndian.Uint32(header[80:84]))
	return size == 84+50*count
}

func readBinarySTL(file *os.File) (m *Mesh) {
	var (
		reader = bufio.NewReader(file)
		header [84]byte
		err    error
	)
	if _, err = io.ReadFull(reader, header[:]); err != nil {
		panic(fmt.Errorf("unable to read binary STL header\n %s", err))
	}
	count := binary.LittleEndian.Uint32(header[80:84])
	m = &Mesh{Tris: make([]Triangle, count)}
	var rec [50]byte // normal + 3 vertices as float32, plus attribute count
	for t := uint32(0); t < count; t++ {
		if _, err = io.ReadFull(reader, rec[:]); err != nil {
			panic(fmt.Errorf("unable to read triangle %d\n %s", t, err))
		}
		tri := &m.Tris[t]
		for n := 0; n < 3; n++ {
			tri.Normal[n] = float64(float32FromLE(rec[4*n:]))
		}
		for v := 0; v < 3; v++ {
			for n := 0; n < 3; n++ {
				tri.V[v][n] = float64(float32FromLE(rec[12+12*v+4*n:]))
			}
		}
	}
	return
}

func float32FromLE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func readASCIISTL(file *os.File) (m *Mesh) {
	var (
		scanner = bufio.NewScanner(file)
		tri     Triangle
		nVerts  int
	)
	m = &Mesh{}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) < 5 {
				panic(fmt.Errorf("unable to parse facet line %q", scanner.Text()))
			}
			tri = Triangle{}
			nVerts = 0
			for n := 0; n < 3; n++ {
				tri.Normal[n] = parseCoord(fields[2+n])
			}
		case "vertex":
			if len(fields) < 4 {
				panic(fmt.Errorf("unable to parse vertex line %q", scanner.Text()))
			}
			if nVerts > 2 {
				panic(fmt.Errorf("unable to use facet with more than 3 vertices"))
			}
			for n := 0; n < 3; n++ {
				tri.V[nVerts][n] = parseCoord(fields[1+n])
			}
			nVerts++
		case "endfacet":
			if nVerts != 3 {
				panic(fmt.Errorf("unable to use facet with %d vertices", nVerts))
			}
			m.Tris = append(m.Tris, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		panic(fmt.Errorf("unable to read ASCII STL\n %s", err))
	}
	return
}

func parseCoord(token string) (val float64) {
	var err error
	if _, err = fmt.Sscanf(token, "%g", &val); err != nil {
		panic(fmt.Errorf("unable to parse coordinate %q\n %s", token, err))
	}
	return
}
