package IncNS2D

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

// modeEnergy carries one Fourier mode total to the writer thread
type modeEnergy struct {
	Mode   int
	Energy float64
}

/*
EnergyLog appends kinetic energy records to the session .mdl file. A planar run
writes one (time, energy) pair per record. A homogeneous run writes one
(time, mode, energy) line per Fourier mode, with the per mode sums computed
across NP workers and gathered onto worker zero through a mailbox before
writing in mode order.
*/
type EnergyLog struct {
	File *os.File
	El   *DG2D.Elements2D
	Hom  *DG2D.Homogeneous1D
	NP   int
}

func NewEnergyLog(sessionName string, el *DG2D.Elements2D,
	hom *DG2D.Homogeneous1D, NP int) (elog *EnergyLog, err error) {
	var f *os.File
	if f, err = os.Create(sessionName + ".mdl"); err != nil {
		return
	}
	elog = &EnergyLog{
		File: f,
		El:   el,
		Hom:  hom,
		NP:   NP,
	}
	return
}

// Log writes the total kinetic energy of the velocity at time
func (elog *EnergyLog) Log(time float64, Vel []utils.Matrix) {
	var (
		el     = elog.El
		energy float64
	)
	for _, V := range Vel {
		energy += 0.5 * el.Integrate(V.Copy().ElMul(V))
	}
	fmt.Fprintf(elog.File, "%16.8e %16.8e\n", time, energy)
}

// LogModes writes the kinetic energy of each Fourier mode of the wave space
// velocity at time, summed over components
func (elog *EnergyLog) LogModes(time float64, Vel []*DG2D.HomoField) {
	var (
		nModes = elog.Hom.NumModes()
		NP     = elog.NP
		wg     = sync.WaitGroup{}
	)
	if NP > nModes {
		NP = 1
	}
	pm := utils.NewPartitionMap(NP, nModes)
	mb := utils.NewMailBox[modeEnergy](NP)
	for n := 0; n < NP; n++ {
		wg.Add(1)
		go func(myThread int) {
			defer wg.Done()
			mMin, mMax := pm.GetBucketRange(myThread)
			for m := mMin; m < mMax; m++ {
				var energy float64
				for _, fld := range Vel {
					energy += fld.ModeEnergy(m)
				}
				mb.PostMessage(myThread, 0, modeEnergy{Mode: m, Energy: energy})
			}
			mb.DeliverMyMessages(myThread)
		}(n)
	}
	wg.Wait()
	mb.WaitReceiveMyMessages(0, nModes)
	recs := mb.ReceiveMsgQs[0].Cells()
	sort.Slice(recs, func(i, j int) bool { return recs[i].Mode < recs[j].Mode })
	for _, rec := range recs {
		fmt.Fprintf(elog.File, "%16.8e %8d %16.8e\n", time, rec.Mode, rec.Energy)
	}
}

// Close is safe on a nil log and after a prior Close, so every exit path of a
// solve can call it
func (elog *EnergyLog) Close() (err error) {
	if elog == nil || elog.File == nil {
		return
	}
	err = elog.File.Close()
	elog.File = nil
	return
}
