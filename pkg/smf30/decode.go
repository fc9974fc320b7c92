package smf30

import (
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
)

// identification section layout, relative to the located base. Subtype 1
// and 3 carry step fields; 2, 4 and 5 reuse only the first three.
var stepIdentFields = []record.FieldSpec{
	{Name: "job_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "step_name", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "program_name", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 24, Width: 8, Kind: record.Text},
	{Name: "job_number", Offset: 32, Width: 8, Kind: record.Text},
}

// timing section layout, relative to the located CPU field.
var timingFields = []record.FieldSpec{
	{Name: "cpu_time", Offset: 0, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "elapsed_time", Offset: 8, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "io_count", Offset: 16, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "service_units", Offset: 24, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "return_code", Offset: 32, Width: 2, Kind: record.Uint16},
	{Name: "pages_read", Offset: 36, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
	{Name: "pages_written", Offset: 40, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
	{Name: "excp_count", Offset: 44, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
}

func decodeStepTermination(rev revision.SMF30) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		base := locateIdentification(fr, rev)
		ident := record.DecodeFields(fr, base, stepIdentFields)

		timingBase := locateTiming(fr, base, rev)
		timing := record.DecodeFields(fr, timingBase, timingFields)

		return &StepTermination{
			Header:        hdr,
			JobName:       ident.Text("job_name"),
			JobNumber:     ident.Text("job_number"),
			UserID:        ident.Text("userid"),
			StepName:      ident.Text("step_name"),
			ProgramName:   ident.Text("program_name"),
			CPUTimeMillis: uint64(timing.Millis("cpu_time")),
			ElapsedMillis: uint64(timing.Millis("elapsed_time")),
			ServiceUnits:  timing.Count("service_units"),
			IOCount:       timing.Count("io_count"),
			ReturnCode:    timing.Count("return_code"),
			PagesRead:     timing.Count("pages_read"),
			PagesWritten:  timing.Count("pages_written"),
			EXCPCount:     timing.Count("excp_count"),
		}, nil
	}
}

var jobTerminationFields = []record.FieldSpec{
	{Name: "job_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "job_number", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "job_class", Offset: 24, Width: 4, Kind: record.Text},
	{Name: "total_steps", Offset: 28, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "failed_steps", Offset: 32, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "job_termination_code", Offset: 36, Width: 4, Kind: record.Uint32},
	{Name: "memory_allocated_mb", Offset: 40, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "memory_max_used_mb", Offset: 44, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "total_excp_count", Offset: 48, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
	{Name: "total_pages_read", Offset: 52, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
	{Name: "total_pages_written", Offset: 56, Width: 4, Kind: record.Uint32, Max: record.MaxPageCount},
	{Name: "cpu_time", Offset: 60, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "elapsed_time", Offset: 64, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "service_units", Offset: 68, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "io_count", Offset: 72, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
}

func decodeJobTermination(rev revision.SMF30) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		base := locateIdentification(fr, rev)
		f := record.DecodeFields(fr, base, jobTerminationFields)

		return &JobTermination{
			Header:             hdr,
			JobName:            f.Text("job_name"),
			JobNumber:          f.Text("job_number"),
			UserID:             f.Text("userid"),
			JobClass:           f.Text("job_class"),
			TotalSteps:         f.Count("total_steps"),
			FailedSteps:        f.Count("failed_steps"),
			JobTerminationCode: f.Count("job_termination_code"),
			MemoryAllocatedMB:  f.Count("memory_allocated_mb"),
			MemoryMaxUsedMB:    f.Count("memory_max_used_mb"),
			TotalEXCPCount:     f.Count("total_excp_count"),
			TotalPagesRead:     f.Count("total_pages_read"),
			TotalPagesWritten:  f.Count("total_pages_written"),
			CPUTimeMillis:      uint64(f.Millis("cpu_time")),
			ElapsedMillis:      uint64(f.Millis("elapsed_time")),
			ServiceUnits:       f.Count("service_units"),
			IOCount:            f.Count("io_count"),
		}, nil
	}
}

var stepInitiationFields = []record.FieldSpec{
	{Name: "job_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "job_number", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "step_name", Offset: 24, Width: 8, Kind: record.Text},
	{Name: "program_name", Offset: 32, Width: 8, Kind: record.Text},
	{Name: "procedure_step_name", Offset: 40, Width: 8, Kind: record.Text},
	{Name: "accounting_code", Offset: 48, Width: 8, Kind: record.Text},
	{Name: "region_mb", Offset: 56, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
}

func decodeStepInitiation(rev revision.SMF30) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		base := locateIdentification(fr, rev)
		f := record.DecodeFields(fr, base, stepInitiationFields)

		return &StepInitiation{
			Header:            hdr,
			JobName:           f.Text("job_name"),
			JobNumber:         f.Text("job_number"),
			UserID:            f.Text("userid"),
			StepName:          f.Text("step_name"),
			ProgramName:       f.Text("program_name"),
			ProcedureStepName: f.Text("procedure_step_name"),
			AccountingCode:    f.Text("accounting_code"),
			RegionSizeMB:      f.Count("region_mb"),
		}, nil
	}
}

var jobInitiationFields = []record.FieldSpec{
	{Name: "job_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "job_number", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "job_class", Offset: 24, Width: 4, Kind: record.Text},
	{Name: "scheduling_environment", Offset: 28, Width: 8, Kind: record.Text},
	{Name: "accounting_code", Offset: 36, Width: 8, Kind: record.Text},
	{Name: "job_priority", Offset: 44, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
}

func decodeJobInitiation(rev revision.SMF30) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		base := locateIdentification(fr, rev)
		f := record.DecodeFields(fr, base, jobInitiationFields)

		return &JobInitiation{
			Header:                hdr,
			JobName:               f.Text("job_name"),
			JobNumber:             f.Text("job_number"),
			UserID:                f.Text("userid"),
			JobClass:              f.Text("job_class"),
			SchedulingEnvironment: f.Text("scheduling_environment"),
			AccountingCode:        f.Text("accounting_code"),
			JobPriority:           f.Count("job_priority"),
		}, nil
	}
}

var netStepFields = []record.FieldSpec{
	{Name: "job_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "job_number", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "netstep_name", Offset: 24, Width: 8, Kind: record.Text},
	{Name: "network_destination", Offset: 32, Width: 16, Kind: record.Text},
	{Name: "network_protocol", Offset: 48, Width: 8, Kind: record.Text},
	{Name: "bytes_transmitted", Offset: 56, Width: 4, Kind: record.Uint32},
	{Name: "bytes_received", Offset: 60, Width: 4, Kind: record.Uint32},
	{Name: "network_response_time", Offset: 64, Width: 4, Kind: record.Uint32, Max: record.MaxElapsedCentis * 10},
	{Name: "return_code", Offset: 68, Width: 2, Kind: record.Uint16},
	{Name: "cpu_time", Offset: 72, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "elapsed_time", Offset: 76, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "io_count", Offset: 80, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
	{Name: "service_units", Offset: 84, Width: 4, Kind: record.Uint32, Max: record.MaxCount},
}

func decodeNetStep(rev revision.SMF30) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		base := locateIdentification(fr, rev)
		f := record.DecodeFields(fr, base, netStepFields)

		return &NetStep{
			Header:               hdr,
			JobName:              f.Text("job_name"),
			JobNumber:            f.Text("job_number"),
			UserID:               f.Text("userid"),
			NetStepName:          f.Text("netstep_name"),
			NetworkDestination:   f.Text("network_destination"),
			NetworkProtocol:      f.Text("network_protocol"),
			BytesTransmitted:     f.Count("bytes_transmitted"),
			BytesReceived:        f.Count("bytes_received"),
			NetworkResponseMilli: f.Count("network_response_time"),
			ReturnCode:           f.Count("return_code"),
			CPUTimeMillis:        uint64(f.Millis("cpu_time")),
			ElapsedMillis:        uint64(f.Millis("elapsed_time")),
			IOCount:              f.Count("io_count"),
			ServiceUnits:         f.Count("service_units"),
		}, nil
	}
}
