package IncNS2D

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

/*
A Checkpoint is the restartable state of a solve at one time level, stored as
one YAML document per file. Fields are held as modal coefficient blocks, a
homogeneous field as one block per physical z plane.
*/
type Checkpoint struct {
	Title  string            `json:"title"`
	Time   float64           `json:"time"`
	Step   int               `json:"step"`
	N      int               `json:"order"`
	K      int               `json:"elements"`
	NZ     int               `json:"homModesZ,omitempty"`
	LZ     float64           `json:"lz,omitempty"`
	Fields []CheckpointField `json:"fields"`
}

type CheckpointField struct {
	Name   string      `json:"name"`
	Coeffs []float64   `json:"coeffs,omitempty"`
	Planes [][]float64 `json:"planes,omitempty"`
}

// CheckpointName returns the file name of checkpoint seq of a session
func CheckpointName(sessionName string, seq int) string {
	return fmt.Sprintf("%s_%d.chk", sessionName, seq)
}

// NewCheckpoint captures the session fields in modal space. Fields whose
// coefficients are stale are transformed first
func NewCheckpoint(title string, time float64, step int,
	el *DG2D.Elements2D, fields []*DG2D.Field) (chk *Checkpoint) {
	chk = &Checkpoint{
		Title:  title,
		Time:   time,
		Step:   step,
		N:      el.N,
		K:      el.K,
		Fields: make([]CheckpointField, len(fields)),
	}
	for i, fld := range fields {
		if !fld.CoeffsValid {
			fld.FwdTrans()
		}
		chk.Fields[i] = CheckpointField{
			Name:   fld.Name,
			Coeffs: append([]float64(nil), fld.GetCoeffs().DataP...),
		}
	}
	return
}

// NewHomoCheckpoint captures homogeneous fields, each returned to physical z
// planes and stored as one modal coefficient block per plane. The fields
// themselves are not modified
func NewHomoCheckpoint(title string, time float64, step int,
	hom *DG2D.Homogeneous1D, fields []*DG2D.HomoField) (chk *Checkpoint) {
	var (
		el = hom.El
	)
	chk = &Checkpoint{
		Title:  title,
		Time:   time,
		Step:   step,
		N:      el.N,
		K:      el.K,
		NZ:     hom.NZ,
		LZ:     hom.LZ,
		Fields: make([]CheckpointField, len(fields)),
	}
	for i, fld := range fields {
		scratch := hom.NewHomoField(fld.Name)
		for z := range fld.Planes {
			copy(scratch.Planes[z].DataP, fld.Planes[z].DataP)
		}
		scratch.WaveSpace = fld.WaveSpace
		if scratch.WaveSpace {
			scratch.HomogeneousBwdTrans()
		}
		planes := make([][]float64, hom.NZ)
		for z := range scratch.Planes {
			planes[z] = append([]float64(nil), el.FwdTrans(scratch.Planes[z]).DataP...)
		}
		chk.Fields[i] = CheckpointField{
			Name:   fld.Name,
			Planes: planes,
		}
	}
	return
}

func WriteCheckpoint(fileName string, chk *Checkpoint) (err error) {
	var data []byte
	if data, err = yaml.Marshal(chk); err != nil {
		return
	}
	err = os.WriteFile(fileName, data, 0644)
	return
}

func ReadCheckpoint(fileName string) (chk *Checkpoint, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	chk = &Checkpoint{}
	if err = yaml.Unmarshal(data, chk); err != nil {
		chk = nil
	}
	return
}

// Restore loads the checkpoint into the session fields by name, leaving each
// field coefficient valid
func (chk *Checkpoint) Restore(el *DG2D.Elements2D, fields []*DG2D.Field) (err error) {
	if chk.N != el.N || chk.K != el.K {
		return fmt.Errorf("checkpoint is order %d on %d elements, session is order %d on %d elements",
			chk.N, chk.K, el.N, el.K)
	}
	for _, fld := range fields {
		src := chk.field(fld.Name)
		if src == nil {
			return fmt.Errorf("checkpoint has no field named %s", fld.Name)
		}
		if len(src.Coeffs) != el.Np*el.K {
			return fmt.Errorf("field %s has %d coefficients, need %d",
				fld.Name, len(src.Coeffs), el.Np*el.K)
		}
		copy(fld.UpdateCoeffs().DataP, src.Coeffs)
	}
	return
}

// RestoreHomo loads the checkpoint into homogeneous fields by name, leaving
// each field in wave space. Plane storage is written in place so views held
// elsewhere stay attached
func (chk *Checkpoint) RestoreHomo(hom *DG2D.Homogeneous1D, fields []*DG2D.HomoField) (err error) {
	var (
		el = hom.El
	)
	if chk.N != el.N || chk.K != el.K || chk.NZ != hom.NZ {
		return fmt.Errorf("checkpoint is order %d on %d elements with %d planes, session needs %d, %d, %d",
			chk.N, chk.K, chk.NZ, el.N, el.K, hom.NZ)
	}
	for _, fld := range fields {
		src := chk.field(fld.Name)
		if src == nil {
			return fmt.Errorf("checkpoint has no field named %s", fld.Name)
		}
		if len(src.Planes) != hom.NZ {
			return fmt.Errorf("field %s has %d planes, need %d",
				fld.Name, len(src.Planes), hom.NZ)
		}
		for z, coeffs := range src.Planes {
			if len(coeffs) != el.Np*el.K {
				return fmt.Errorf("field %s plane %d has %d coefficients, need %d",
					fld.Name, z, len(coeffs), el.Np*el.K)
			}
			C := utils.NewMatrix(el.Np, el.K, coeffs)
			copy(fld.Planes[z].DataP, el.BwdTrans(C).DataP)
		}
		fld.WaveSpace = false
		fld.HomogeneousFwdTrans()
	}
	return
}

func (chk *Checkpoint) field(name string) *CheckpointField {
	for i := range chk.Fields {
		if chk.Fields[i].Name == name {
			return &chk.Fields[i]
		}
	}
	return nil
}
