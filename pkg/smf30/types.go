package smf30

import "github.com/bcallard/smfdump/pkg/record"

// StepTermination is subtype 1: resource consumption of one finished
// job step. Timing values are whole milliseconds, converted from the raw
// microsecond and hundredth-of-a-second wire units.
type StepTermination struct {
	Header record.Header

	JobName     string
	JobNumber   string
	UserID      string
	StepName    string
	ProgramName string

	CPUTimeMillis uint64
	ElapsedMillis uint64
	ServiceUnits  uint64
	IOCount       uint64

	ReturnCode   uint64
	PagesRead    uint64
	PagesWritten uint64
	EXCPCount    uint64
}

func (r *StepTermination) Subtype() uint8      { return 1 }
func (r *StepTermination) SubtypeName() string { return "Job Step Termination" }

func (r *StepTermination) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Subtype(), r.SubtypeName())
	m["job_name"] = r.JobName
	m["job_number"] = r.JobNumber
	m["owning_userid"] = r.UserID
	m["step_name"] = r.StepName
	m["program_name"] = r.ProgramName
	m["cpu_time_ms"] = r.CPUTimeMillis
	m["elapsed_time_ms"] = r.ElapsedMillis
	m["service_units"] = r.ServiceUnits
	m["io_count"] = r.IOCount
	m["return_code"] = r.ReturnCode
	m["pages_read"] = r.PagesRead
	m["pages_written"] = r.PagesWritten
	m["excp_count"] = r.EXCPCount
	return m
}

// JobTermination is subtype 2: whole-job totals at job end.
type JobTermination struct {
	Header record.Header

	JobName   string
	JobNumber string
	UserID    string
	JobClass  string

	TotalSteps         uint64
	FailedSteps        uint64
	JobTerminationCode uint64

	MemoryAllocatedMB uint64
	MemoryMaxUsedMB   uint64

	TotalEXCPCount    uint64
	TotalPagesRead    uint64
	TotalPagesWritten uint64

	CPUTimeMillis uint64
	ElapsedMillis uint64
	ServiceUnits  uint64
	IOCount       uint64
}

func (r *JobTermination) Subtype() uint8      { return 2 }
func (r *JobTermination) SubtypeName() string { return "Job Termination" }

func (r *JobTermination) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Subtype(), r.SubtypeName())
	m["job_name"] = r.JobName
	m["job_number"] = r.JobNumber
	m["owning_userid"] = r.UserID
	m["job_class"] = r.JobClass
	m["total_steps"] = r.TotalSteps
	m["failed_steps"] = r.FailedSteps
	m["job_termination_code"] = r.JobTerminationCode
	m["memory_allocated_mb"] = r.MemoryAllocatedMB
	m["memory_max_used_mb"] = r.MemoryMaxUsedMB
	m["total_excp_count"] = r.TotalEXCPCount
	m["total_pages_read"] = r.TotalPagesRead
	m["total_pages_written"] = r.TotalPagesWritten
	m["cpu_time_ms"] = r.CPUTimeMillis
	m["elapsed_time_ms"] = r.ElapsedMillis
	m["service_units"] = r.ServiceUnits
	m["io_count"] = r.IOCount
	return m
}

// StepInitiation is subtype 3: written when a step is dispatched.
type StepInitiation struct {
	Header record.Header

	JobName   string
	JobNumber string
	UserID    string

	StepName          string
	ProgramName       string
	ProcedureStepName string
	AccountingCode    string

	RegionSizeMB uint64
}

func (r *StepInitiation) Subtype() uint8      { return 3 }
func (r *StepInitiation) SubtypeName() string { return "Step Initiation" }

func (r *StepInitiation) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Subtype(), r.SubtypeName())
	m["job_name"] = r.JobName
	m["job_number"] = r.JobNumber
	m["owning_userid"] = r.UserID
	m["step_name"] = r.StepName
	m["program_name"] = r.ProgramName
	m["procedure_step_name"] = r.ProcedureStepName
	m["accounting_code"] = r.AccountingCode
	m["memory_region_size_mb"] = r.RegionSizeMB
	return m
}

// JobInitiation is subtype 4: written when a job is selected to run.
type JobInitiation struct {
	Header record.Header

	JobName   string
	JobNumber string
	UserID    string

	JobClass              string
	SchedulingEnvironment string
	AccountingCode        string

	JobPriority uint64
}

func (r *JobInitiation) Subtype() uint8      { return 4 }
func (r *JobInitiation) SubtypeName() string { return "Job Initiation" }

func (r *JobInitiation) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Subtype(), r.SubtypeName())
	m["job_name"] = r.JobName
	m["job_number"] = r.JobNumber
	m["owning_userid"] = r.UserID
	m["job_class"] = r.JobClass
	m["scheduling_environment"] = r.SchedulingEnvironment
	m["accounting_code"] = r.AccountingCode
	m["job_priority"] = r.JobPriority
	return m
}

// NetStep is subtype 5: completion of a network-attached step.
type NetStep struct {
	Header record.Header

	JobName   string
	JobNumber string
	UserID    string

	NetStepName        string
	NetworkDestination string
	NetworkProtocol    string

	BytesTransmitted     uint64
	BytesReceived        uint64
	NetworkResponseMilli uint64
	ReturnCode           uint64

	CPUTimeMillis uint64
	ElapsedMillis uint64
	IOCount       uint64
	ServiceUnits  uint64
}

func (r *NetStep) Subtype() uint8      { return 5 }
func (r *NetStep) SubtypeName() string { return "NetStep Completion" }

func (r *NetStep) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Subtype(), r.SubtypeName())
	m["job_name"] = r.JobName
	m["job_number"] = r.JobNumber
	m["owning_userid"] = r.UserID
	m["netstep_name"] = r.NetStepName
	m["network_destination"] = r.NetworkDestination
	m["network_protocol"] = r.NetworkProtocol
	m["bytes_transmitted"] = r.BytesTransmitted
	m["bytes_received"] = r.BytesReceived
	m["network_response_time_ms"] = r.NetworkResponseMilli
	m["return_code"] = r.ReturnCode
	m["cpu_time_ms"] = r.CPUTimeMillis
	m["elapsed_time_ms"] = r.ElapsedMillis
	m["io_count"] = r.IOCount
	m["service_units"] = r.ServiceUnits
	return m
}
