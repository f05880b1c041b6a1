package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

func main() {
	csvFile := flag.String("csvFile", "", "csv produced by a grid refinement sweep")
	flag.Parse()
	if *csvFile == "" {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %s\n", *csvFile)

	studies := readCSV(*csvFile)
	keys := make([]string, 0, len(studies))
	for key := range studies {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		studies[key].Print()
	}
}

type ConvergenceStudy struct {
	title            string
	order            int
	numPTS           []int
	CFL              float64
	uRMS, vRMS, pRMS []float64
	uMAX, vMAX, pMAX []float64
}

func NewConvergenceStudy(title string, order int, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		order: order,
		CFL:   CFL,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, uRMS, vRMS, pRMS, uMAX, vMAX, pMAX float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.uRMS = append(cs.uRMS, uRMS)
	cs.vRMS = append(cs.vRMS, vRMS)
	cs.pRMS = append(cs.pRMS, pRMS)
	cs.uMAX = append(cs.uMAX, uMAX)
	cs.vMAX = append(cs.vMAX, vMAX)
	cs.pMAX = append(cs.pMAX, pMAX)
}

// Rates compute the observed convergence order between successive mesh
// refinements, using h ~ 1/sqrt(numPTS) as the 2D mesh spacing
func (cs *ConvergenceStudy) Rates() (uRate, vRate, pRate []float64) {
	rate := func(eC, eF float64, nC, nF int) float64 {
		return math.Log(eC/eF) / (0.5 * math.Log(float64(nF)/float64(nC)))
	}
	for i := 1; i < len(cs.numPTS); i++ {
		nC, nF := cs.numPTS[i-1], cs.numPTS[i]
		uRate = append(uRate, rate(cs.uRMS[i-1], cs.uRMS[i], nC, nF))
		vRate = append(vRate, rate(cs.vRMS[i-1], cs.vRMS[i], nC, nF))
		pRate = append(pRate, rate(cs.pRMS[i-1], cs.pRMS[i], nC, nF))
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("%s, order %d, CFL %.2f\n", cs.title, cs.order, cs.CFL)
	uRate, vRate, pRate := cs.Rates()
	for i, npts := range cs.numPTS {
		fmt.Printf("%d, %v, %v, %v, %v, %v, %v",
			npts, cs.uRMS[i], cs.vRMS[i], cs.pRMS[i], cs.uMAX[i], cs.vMAX[i], cs.pMAX[i])
		if i > 0 {
			fmt.Printf(", rates: %5.2f, %5.2f, %5.2f", uRate[i-1], vRate[i-1], pRate[i-1])
		}
		fmt.Printf("\n")
	}
}

// readCSV groups rows by case title and polynomial order. Expected columns:
// title, numPts, order, CFL, uRMS, vRMS, pRMS, uMAX, vMAX, pMAX, with one
// header row.
func readCSV(path string) map[string]*ConvergenceStudy {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	records, err := csv.NewReader(bufio.NewReader(f)).ReadAll()
	if err != nil {
		panic(err)
	}
	studies := make(map[string]*ConvergenceStudy)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		var (
			title = rec[0]
			npts  = atoi(rec[1])
			order = atoi(rec[2])
		)
		key := fmt.Sprintf("%s/N=%d", title, order)
		cs, ok := studies[key]
		if !ok {
			cs = NewConvergenceStudy(title, order, atof(rec[3]))
			studies[key] = cs
		}
		cs.Add(npts, atof(rec[4]), atof(rec[5]), atof(rec[6]),
			atof(rec[7]), atof(rec[8]), atof(rec[9]))
	}
	return studies
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		panic(err)
	}
	return n
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		panic(err)
	}
	return v
}
