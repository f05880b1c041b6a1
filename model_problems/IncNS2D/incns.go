package IncNS2D

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/InputParameters"
	"github.com/notargets/incflow/TimeIntegration"
	"github.com/notargets/incflow/utils"
)

type SolveStatus uint

const (
	Running SolveStatus = iota
	Completed
	Converged
)

var StatusPrintNames = map[SolveStatus]string{
	Running:   "running",
	Completed: "completed",
	Converged: "converged",
}

func (st SolveStatus) Print() (txt string) {
	txt = StatusPrintNames[st]
	return
}

/*
INS solves the incompressible Navier Stokes equations on an unstructured 2D
mesh of triangles, velocity corrected with a stiffly stable splitting. The
velocity group advances with one multistep integrator; the polymer stress or
scalar transport groups, when configured, each advance with their own ahead of
the velocity every outer step. Optional explicit sub stepping re-advances the
advective part of the integrator history at its own stable step, and an
optional Fourier expansion extends the solution homogeneously in z.
*/
type INS struct {
	MeshFile       string
	El             *DG2D.Elements2D
	IP             *InputParameters.InputParameters2D
	SessionName    string
	EqType         EquationType
	ViscModel      ViscModelType
	SysType        GlobalSysType
	Kinvis         float64
	ParallelDegree int
	Partitions     *utils.PartitionMap
	Fields         []*DG2D.Field
	VelIdx         []int
	PIdx           int
	StressIdx      []int
	ScalarIdx      []int
	Force          *BodyForce
	VC             *VelocityCorrection
	Transported    []*TransportedGroup
	Sub            *SubStep
	Steady         *SteadyMonitor
	Energy         *EnergyLog
	Filters        []Filter
	Integ          *TimeIntegration.Integrator
	Sol            *TimeIntegration.Solution
	Hom            *DG2D.Homogeneous1D
	HomOps         *HomoOperators
	VelHomo        []*DG2D.HomoField
	Status         SolveStatus
	StartTime      float64
	StepCount      int
	CheckSeq       int
}

func NewINS(ip *InputParameters.InputParameters2D, meshFile string,
	ProcLimit int, verbose bool) (ins *INS) {
	el := DG2D.NewElements2D(ip.PolynomialOrder, meshFile, verbose)
	ins = NewINSFromElements(ip, el, ProcLimit, verbose)
	ins.MeshFile = meshFile
	return
}

func NewINSFromElements(ip *InputParameters.InputParameters2D, el *DG2D.Elements2D,
	ProcLimit int, verbose bool) (ins *INS) {
	applyDefaults(ip)
	if ip.TimeStep <= 0 {
		panic(fmt.Errorf("time step must be positive, have %g", ip.TimeStep))
	}
	if ip.NumSteps <= 0 {
		panic(fmt.Errorf("step count must be positive, have %d", ip.NumSteps))
	}
	ins = &INS{
		El:          el,
		IP:          ip,
		SessionName: ip.Title,
		EqType:      NewEquationType(ip.Equation),
		ViscModel:   NewViscModelType(ip.ViscoElasticModel),
		SysType:     NewGlobalSysType(ip.GlobalSysSoln),
		Kinvis:      ip.Kinvis,
		PIdx:        -1,
	}
	ins.SetParallelDegree(ProcLimit, el.K)
	switch strings.ToLower(ip.HomogeneousType) {
	case "":
	case "1d", "homogeneous1d":
		ins.Hom = DG2D.NewHomogeneous1D(el, ip.HomModesZ, ip.LZ)
	default:
		panic(fmt.Errorf("unable to use homogeneous expansion named %s", ip.HomogeneousType))
	}
	ins.resolveVariables()
	if ins.Hom != nil {
		ins.checkHomoConfig()
		ncomp := 3
		ins.Force = NewBodyForce(ip.BodyForce, ins.Hom, ncomp)
		ins.HomOps = NewHomoOperators(el, ins.Hom, ins.Kinvis, ins.EqType.Advection(),
			ins.Force, ins.SysType)
		ins.HomOps.HelmV.Partition(ins.Partitions)
		ins.HomOps.HelmP.Partition(ins.Partitions)
		names := []string{"u", "v", "w"}
		for _, name := range names {
			ins.VelHomo = append(ins.VelHomo, ins.Hom.NewHomoField(name))
		}
	} else {
		ins.Force = NewBodyForce(ip.BodyForce, nil, len(ins.VelIdx))
		atype := ins.EqType.Advection()
		var base []utils.Matrix
		if atype == Linearised {
			// Filled from the session state at engine start
			for range ins.VelIdx {
				base = append(base, utils.NewMatrix(el.Np, el.K))
			}
		}
		adv := NewAdvectionOperator(el, atype, base)
		ins.VC = NewVelocityCorrection(el, ins.Kinvis, adv, ins.Force,
			ins.Fields[ins.PIdx], ins.SysType)
		ins.VC.HelmV.Partition(ins.Partitions)
		ins.VC.HelmP.Partition(ins.Partitions)
		if len(ip.HistoryPoints) > 0 {
			ins.Filters = append(ins.Filters,
				NewHistoryPointsFilter(ins.SessionName, el, ip.HistoryPoints))
		}
	}
	if verbose {
		fmt.Printf("Incompressible Navier-Stokes in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel\n", ins.ParallelDegree)
		fmt.Printf("Solving %s\n", ins.EqType.Print())
		fmt.Printf("Kinematic Viscosity = %8.5f\n", ins.Kinvis)
		if ins.Hom != nil {
			fmt.Printf("Homogeneous in Z: %d planes over LZ = %8.5f\n", ins.Hom.NZ, ins.Hom.LZ)
		}
		if ins.ViscModel != NoViscModel {
			fmt.Printf("Viscoelastic model: %s\n", ins.ViscModel.Print())
		}
		fmt.Printf("dt = %8.5f, Polynomial Degree N = %d (1 is linear), Num Elements K = %d\n\n\n",
			ip.TimeStep, el.N, el.K)
	}
	return
}

func applyDefaults(ip *InputParameters.InputParameters2D) {
	if ip.Title == "" {
		ip.Title = "incflow"
	}
	if ip.Equation == "" {
		ip.Equation = "UnsteadyNavierStokes"
	}
	if ip.TimeIntOrder == 0 {
		ip.TimeIntOrder = 2
	}
	if ip.SubStepCFL == 0 {
		ip.SubStepCFL = 0.5
	}
	if ip.MinSubSteps == 0 {
		ip.MinSubSteps = 1
	}
	if len(ip.Variables) == 0 {
		ip.Variables = []string{"u", "v", "p"}
	}
}

func (ins *INS) SetParallelDegree(ProcLimit, Kmax int) {
	if ProcLimit != 0 {
		ins.ParallelDegree = ProcLimit
	} else {
		ins.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	if ins.ParallelDegree > Kmax {
		ins.ParallelDegree = 1
	}
	ins.Partitions = utils.NewPartitionMap(ins.ParallelDegree, Kmax)
}

/*
resolveVariables maps the configured variable names onto the session field
layout. The velocity components and the pressure are required; the stress
components are required when a viscoelastic model is configured; anything else
becomes a transported scalar.
*/
func (ins *INS) resolveVariables() {
	var (
		ip       = ins.IP
		velNames = []string{"u", "v"}
	)
	if ins.Hom != nil {
		velNames = append(velNames, "w")
	}
	index := make(map[string]int)
	for i, name := range ip.Variables {
		index[strings.ToLower(name)] = i
	}
	for _, name := range velNames {
		i, ok := index[name]
		if !ok {
			panic(fmt.Errorf("incompressible flow requires variable %s, have %v", name, ip.Variables))
		}
		ins.VelIdx = append(ins.VelIdx, i)
		delete(index, name)
	}
	i, ok := index["p"]
	if !ok {
		panic(fmt.Errorf("incompressible flow requires variable p, have %v", ip.Variables))
	}
	ins.PIdx = i
	delete(index, "p")
	if ins.ViscModel != NoViscModel {
		for _, name := range []string{"txx", "txy", "tyy"} {
			i, ok := index[name]
			if !ok {
				panic(fmt.Errorf("viscoelastic model %s requires variable %s, have %v",
					ins.ViscModel.Print(), name, ip.Variables))
			}
			ins.StressIdx = append(ins.StressIdx, i)
			delete(index, name)
		}
	}
	for i, name := range ip.Variables {
		if _, left := index[strings.ToLower(name)]; left {
			ins.ScalarIdx = append(ins.ScalarIdx, i)
		}
	}
	if ins.Hom == nil {
		for _, name := range ip.Variables {
			ins.Fields = append(ins.Fields, DG2D.NewField(ins.El, strings.ToLower(name)))
		}
	}
}

func (ins *INS) checkHomoConfig() {
	var (
		ip = ins.IP
	)
	if ip.SubStepping {
		panic(fmt.Errorf("sub stepping with a homogeneous expansion is not supported"))
	}
	if ins.EqType.Advection() == Linearised {
		panic(fmt.Errorf("linearised advection with a homogeneous expansion is not supported"))
	}
	if ins.ViscModel != NoViscModel {
		panic(fmt.Errorf("viscoelastic transport with a homogeneous expansion is not supported"))
	}
	if len(ins.ScalarIdx) != 0 {
		panic(fmt.Errorf("scalar transport with a homogeneous expansion is not supported"))
	}
	if len(ip.HistoryPoints) != 0 {
		panic(fmt.Errorf("history point output with a homogeneous expansion is not supported"))
	}
}

// SetInitialConditions evaluates fn at the element nodes for every session
// field, fn returning the value of the named field at (x, y)
func (ins *INS) SetInitialConditions(fn func(name string, x, y float64) float64) {
	var (
		el = ins.El
	)
	for _, fld := range ins.Fields {
		P := fld.UpdatePhys()
		for k := 0; k < el.K; k++ {
			for i := 0; i < el.Np; i++ {
				P.Set(i, k, fn(fld.Name, el.X.At(i, k), el.Y.At(i, k)))
			}
		}
	}
}

// SetInitialConditionsHomo evaluates fn at the element nodes of every z plane
// of the homogeneous velocity
func (ins *INS) SetInitialConditionsHomo(fn func(name string, x, y, z float64) float64) {
	var (
		el  = ins.El
		hom = ins.Hom
	)
	for _, fld := range ins.VelHomo {
		for z := 0; z < hom.NZ; z++ {
			P := fld.Planes[z]
			for k := 0; k < el.K; k++ {
				for i := 0; i < el.Np; i++ {
					P.Set(i, k, fn(fld.Name, el.X.At(i, k), el.Y.At(i, k), hom.PlaneZ(z)))
				}
			}
		}
		fld.WaveSpace = false
	}
}

func (ins *INS) AddFilter(f Filter) {
	if ins.Hom != nil {
		panic(fmt.Errorf("filters with a homogeneous expansion are not supported"))
	}
	ins.Filters = append(ins.Filters, f)
}

// Restart loads a checkpoint into the session fields and resumes time from it
func (ins *INS) Restart(fileName string) (err error) {
	var chk *Checkpoint
	if chk, err = ReadCheckpoint(fileName); err != nil {
		return
	}
	if ins.Hom != nil {
		if err = chk.RestoreHomo(ins.Hom, ins.homoFields()); err != nil {
			return
		}
	} else {
		if err = chk.Restore(ins.El, ins.Fields); err != nil {
			return
		}
		for _, fld := range ins.Fields {
			fld.BwdTrans()
		}
	}
	ins.StartTime = chk.Time
	return
}

// velocity returns the current physical space velocity group
func (ins *INS) velocity() (Vel []utils.Matrix) {
	for _, i := range ins.VelIdx {
		Vel = append(Vel, ins.Fields[i].GetPhys())
	}
	return
}

func (ins *INS) homoFields() (fields []*DG2D.HomoField) {
	fields = append(fields, ins.VelHomo...)
	fields = append(fields, ins.HomOps.Pressure)
	return
}

/*
Solve runs the outer step loop. Each step sub steps the advective history when
enabled, advances the transported groups, then the velocity group, and fires
the energy, checkpoint and steady state triggers on their intervals. The loop
exits Completed after the configured step count or Converged when the steady
monitor trips; both paths run the same finalization.
*/
func (ins *INS) Solve() {
	var (
		ip     = ins.IP
		dt     = ip.TimeStep
		NSteps = ip.NumSteps
	)
	ins.Status = Running
	ins.StepCount = 0
	ins.CheckSeq = 0
	ins.startEngine()
	ins.PrintInitialization()
	elapsed := time.Duration(0)
	var start time.Time
	for n := 0; n < NSteps; n++ {
		start = time.Now()
		nsub := 1
		if ins.Sub != nil {
			ins.Sub.SaveFields(n, ins.velocity())
			ins.Sub.Advance(n, ins.Sol, ins.Sol.Time)
			nsub = ins.Sub.NSub
		}
		for _, tg := range ins.Transported {
			out := tg.Advance(dt, ins.advectingVelocity())
			for j, idx := range tg.FieldIdx {
				copy(ins.Fields[idx].UpdateCoeffs().DataP, ins.El.FwdTrans(out[j]).DataP)
			}
		}
		var out []utils.Matrix
		if ins.Hom != nil {
			out = ins.Integ.TimeIntegrate(dt, ins.Sol, ins.HomOps)
		} else {
			out = ins.Integ.TimeIntegrate(dt, ins.Sol, ins.VC)
		}
		ins.applyState(out)
		elapsed += time.Now().Sub(start)
		ins.StepCount = n + 1
		if ip.IO_EnergySteps > 0 && (n+1)%ip.IO_EnergySteps == 0 {
			if ins.Hom != nil {
				ins.Energy.LogModes(ins.Sol.Time, ins.VelHomo)
			} else {
				ins.Energy.Log(ins.Sol.Time, ins.velocity())
			}
		}
		if ip.IO_CheckSteps > 0 && n > 0 && (n+1)%ip.IO_CheckSteps == 0 {
			ins.CheckSeq++
			ins.writeCheckpoint()
		}
		if ip.SteadyStateSteps > 0 && n > 0 && (n+1)%ip.SteadyStateSteps == 0 {
			if ins.Steady.Check(ins.monitorCoeffs()) {
				ins.Status = Converged
			}
		}
		if ins.Status == Running && len(ins.Filters) > 0 {
			for _, fld := range ins.Fields {
				if !fld.CoeffsValid {
					fld.FwdTrans()
				}
			}
			for _, f := range ins.Filters {
				if err := f.Update(ins.Fields, ins.Sol.Time); err != nil {
					panic(err)
				}
			}
		}
		if ip.IO_InfoSteps > 0 && ((n+1)%ip.IO_InfoSteps == 0 || n == 0) {
			ins.PrintUpdate(ins.Sol.Time, dt, n+1, nsub)
		}
		if ins.Status == Converged {
			break
		}
	}
	if ins.Status == Running {
		ins.Status = Completed
	}
	ins.finalize()
	ins.PrintFinal(elapsed, ins.StepCount)
}

// advectingVelocity is the velocity carrying the transported groups this
// step. With sub stepping active the history snapshot holds the step start
// state, since the sub cycle re-advances the live solution slots in place
func (ins *INS) advectingVelocity() []utils.Matrix {
	if ins.Sub != nil {
		return ins.Sub.History.Slots[0]
	}
	return ins.velocity()
}

// startEngine builds the integration state scoped to one solve
func (ins *INS) startEngine() {
	var (
		ip = ins.IP
		el = ins.El
		dt = ip.TimeStep
	)
	ins.Integ = TimeIntegration.NewIntegrator(TimeIntegration.IMEX, ip.TimeIntOrder)
	if ins.Hom != nil {
		for _, fld := range ins.VelHomo {
			if !fld.WaveSpace {
				fld.HomogeneousFwdTrans()
			}
		}
		U0 := make([]utils.Matrix, 0, 3*ins.Hom.NZ)
		for _, fld := range ins.VelHomo {
			U0 = append(U0, fld.Planes...)
		}
		ins.Sol = ins.Integ.InitializeScheme(dt, U0, ins.StartTime, ins.HomOps)
	} else {
		U0 := ins.velocity()
		if ins.EqType.Advection() == Linearised {
			// The base flow linearised about is the state entering the solve
			TimeIntegration.CopyFields(ins.VC.Adv.BaseFlow, U0)
		}
		ins.Sol = ins.Integ.InitializeScheme(dt, U0, ins.StartTime, ins.VC)
		if ip.SubStepping {
			ins.Sub = NewSubStep(el, ins.VC.Adv, ins.Force, dt, ip.SubStepCFL,
				ip.MinSubSteps, ip.TimeIntOrder, len(U0))
		}
		ins.Transported = nil
		if ins.ViscModel != NoViscModel {
			stress := ins.groupFields(ins.StressIdx)
			tg := NewStressGroup(el, ins.groupNames(ins.StressIdx), ins.StressIdx,
				ins.ViscModel, ip.RelaxationTime, ip.PolymerViscosity, ip.MobilityAlpha,
				ip.TimeIntOrder, dt, stress)
			ins.Transported = append(ins.Transported, tg)
			ins.VC.StressForce = tg.StressForce()
		}
		if len(ins.ScalarIdx) > 0 {
			tg := NewTransportedGroup(el, ins.groupNames(ins.ScalarIdx), ins.ScalarIdx,
				ins.EqType.Advection(), ins.VC.Adv.BaseFlow, ip.ScalarDiffusivity,
				ip.TimeIntOrder, ins.SysType, dt, ins.groupFields(ins.ScalarIdx))
			if tg.Helm != nil {
				tg.Helm.Partition(ins.Partitions)
			}
			ins.Transported = append(ins.Transported, tg)
		}
	}
	ins.applyState(ins.Sol.GetSolVector(0))
	ins.Steady = NewSteadyMonitor(ip.SteadyStateTol)
	if ip.IO_EnergySteps > 0 {
		elog, err := NewEnergyLog(ins.SessionName, el, ins.Hom, ins.ParallelDegree)
		if err != nil {
			panic(err)
		}
		ins.Energy = elog
	}
	for _, f := range ins.Filters {
		if err := f.Initialise(ins.Fields, ins.StartTime); err != nil {
			panic(err)
		}
	}
}

func (ins *INS) groupFields(idx []int) (U []utils.Matrix) {
	for _, i := range idx {
		if !ins.Fields[i].PhysState() {
			ins.Fields[i].BwdTrans()
		}
		U = append(U, ins.Fields[i].GetPhys())
	}
	return
}

func (ins *INS) groupNames(idx []int) (names []string) {
	for _, i := range idx {
		names = append(names, ins.Fields[i].Name)
	}
	return
}

// applyState points the session fields at the newest solution slot. The
// multistep history recycles storage between slots every step, so the views
// are refreshed after each advance
func (ins *INS) applyState(out []utils.Matrix) {
	if ins.Hom != nil {
		var (
			NZ = ins.Hom.NZ
		)
		for c, fld := range ins.VelHomo {
			for z := 0; z < NZ; z++ {
				fld.Planes[z] = out[c*NZ+z]
			}
			fld.WaveSpace = true
		}
		return
	}
	for c, i := range ins.VelIdx {
		ins.Fields[i].SetPhys(out[c])
	}
}

func (ins *INS) monitorCoeffs() (coeffs []utils.Matrix) {
	if ins.Hom != nil {
		return ins.Sol.GetSolVector(0)
	}
	for _, i := range ins.VelIdx {
		coeffs = append(coeffs, ins.El.FwdTrans(ins.Fields[i].GetPhys()))
	}
	return
}

func (ins *INS) writeCheckpoint() {
	var chk *Checkpoint
	if ins.Hom != nil {
		chk = NewHomoCheckpoint(ins.SessionName, ins.Sol.Time, ins.StepCount,
			ins.Hom, ins.homoFields())
	} else {
		chk = NewCheckpoint(ins.SessionName, ins.Sol.Time, ins.StepCount,
			ins.El, ins.Fields)
	}
	if err := WriteCheckpoint(CheckpointName(ins.SessionName, ins.CheckSeq), chk); err != nil {
		panic(err)
	}
}

// finalize runs on both exit paths of the solve
func (ins *INS) finalize() {
	if err := ins.Energy.Close(); err != nil {
		panic(err)
	}
	if ins.Hom != nil {
		for _, fld := range ins.homoFields() {
			if fld.WaveSpace {
				fld.HomogeneousBwdTrans()
			}
		}
	}
	for _, f := range ins.Filters {
		if err := f.Finalise(ins.Fields, ins.Sol.Time); err != nil {
			panic(err)
		}
	}
}

func (ins *INS) PrintInitialization() {
	if len(ins.MeshFile) != 0 {
		fmt.Printf("Using mesh from file: [%s]\n", ins.MeshFile)
	}
	fmt.Printf("Solving %d steps of size %8.5f\n", ins.IP.NumSteps, ins.IP.TimeStep)
	fmt.Printf("    iter    time      dt    nsub\n")
}

func (ins *INS) PrintUpdate(Time, dt float64, steps, nsub int) {
	fmt.Printf("%8d%8.5f%8.5f%8d\n", steps, Time, dt, nsub)
}

func (ins *INS) PrintFinal(elapsed time.Duration, steps int) {
	if ins.Status == Converged {
		fmt.Printf("Converged to steady state after %d steps\n", steps)
	}
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / (float64(ins.El.K * steps))
	fmt.Printf("\nExecution rate %8.5f us per element step over %d steps\n", rate, steps)
	fmt.Printf("%s\n", utils.GetMemUsage())
}
