package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvergenceStudy(t *testing.T) {
	{ // Second order halving of h should produce a rate of 2
		cs := NewConvergenceStudy("Kovasznay", 2, 0.5)
		cs.Add(100, 1.e-2, 2.e-2, 4.e-2, 1.e-1, 2.e-1, 4.e-1)
		cs.Add(400, 0.25e-2, 0.5e-2, 1.e-2, 2.5e-2, 5.e-2, 1.e-1)
		uRate, vRate, pRate := cs.Rates()
		assert.Len(t, uRate, 1)
		assert.InDelta(t, 2.0, uRate[0], 1.e-10)
		assert.InDelta(t, 2.0, vRate[0], 1.e-10)
		assert.InDelta(t, 2.0, pRate[0], 1.e-10)
	}
	{ // Rows sharing a title and order accumulate into one study
		dir := t.TempDir()
		fileName := filepath.Join(dir, "study.csv")
		csvText := "Title,NumPts,N,CFL,uRMS,vRMS,pRMS,uMAX,vMAX,pMAX\n" +
			"Kovasznay,100,3,0.50,1.e-3,1.e-3,1.e-2,1.e-2,1.e-2,1.e-1\n" +
			"Kovasznay,400,3,0.50,1.25e-4,1.25e-4,2.5e-3,1.e-3,1.e-3,1.e-2\n" +
			"Kovasznay,100,4,0.50,1.e-4,1.e-4,1.e-3,1.e-3,1.e-3,1.e-2\n"
		assert.NoError(t, os.WriteFile(fileName, []byte(csvText), 0644))
		studies := readCSV(fileName)
		assert.Len(t, studies, 2)
		cs := studies["Kovasznay3"]
		assert.NotNil(t, cs)
		assert.Equal(t, 3, cs.order)
		assert.Equal(t, []int{100, 400}, cs.numPTS)
		assert.InDelta(t, 0.5, cs.CFL, 1.e-10)
		uRate, _, _ := cs.Rates()
		assert.InDelta(t, 3.0, uRate[0], 1.e-10)
		assert.Len(t, studies["Kovasznay4"].numPTS, 1)
	}
}
