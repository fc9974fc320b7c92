package smf30

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcallard/smfdump/pkg/ebcdic"
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
)

// encodeInto runs a descriptor table in reverse at the given base: text
// values are EBCDIC-encoded, integers written big-endian pre-scale.
func encodeInto(fr []byte, base int, specs []record.FieldSpec, text map[string]string, nums map[string]uint64) {
	for _, s := range specs {
		off := base + s.Offset
		switch s.Kind {
		case record.Text:
			copy(fr[off:off+s.Width], ebcdic.Encode(text[s.Name], s.Width))
		case record.Uint16:
			binary.BigEndian.PutUint16(fr[off:], uint16(nums[s.Name]))
		case record.Uint32:
			binary.BigEndian.PutUint32(fr[off:], uint32(nums[s.Name]))
		}
	}
}

// buildFrame assembles an empty family-30 frame with the identification
// section expected at identBase. The span between the header and the
// identification section is filled with EBCDIC periods so that earlier
// candidate offsets fail the job-name probe.
func buildFrame(subtype uint8, identBase, size int) []byte {
	fr := make([]byte, size)
	binary.BigEndian.PutUint16(fr[0:2], uint16(size))
	binary.BigEndian.PutUint16(fr[4:6], uint16(size-4))
	fr[8] = Family
	copy(fr[14:18], ebcdic.Encode("SYSA", 4))
	copy(fr[18:22], ebcdic.Encode("JES2", 4))
	fr[22] = subtype

	for i := record.HeaderSize; i < identBase; i++ {
		fr[i] = 0x4B
	}
	return fr
}

func dispatch(t *testing.T, fr []byte) record.Record {
	t.Helper()
	reg := NewRegistry(revision.Default().SMF30)
	hdr, err := record.DecodeHeader(fr, Family)
	require.NoError(t, err)
	rec, err := reg.Dispatch(fr, hdr)
	require.NoError(t, err)
	return rec
}

func TestDecodeStepTermination(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault
	cpuBase := identBase + rev.CPUCandidates[0]

	fr := buildFrame(1, identBase, cpuBase+64)
	encodeInto(fr, identBase, stepIdentFields,
		map[string]string{
			"job_name":     "TESTJOB1",
			"step_name":    "STEP01",
			"program_name": "IEFBR14",
			"userid":       "USER001",
			"job_number":   "JOB00123",
		}, nil)
	encodeInto(fr, cpuBase, timingFields, nil,
		map[string]uint64{
			"cpu_time":      2500, // microseconds
			"elapsed_time":  30,   // hundredths of a second
			"io_count":      640,
			"service_units": 5100,
			"return_code":   4,
			"pages_read":    210,
			"pages_written": 35,
			"excp_count":    118,
		})

	step, ok := dispatch(t, fr).(*StepTermination)
	require.True(t, ok)

	assert.Equal(t, "TESTJOB1", step.JobName)
	assert.Equal(t, "STEP01", step.StepName)
	assert.Equal(t, "IEFBR14", step.ProgramName)
	assert.Equal(t, "USER001", step.UserID)
	assert.Equal(t, "JOB00123", step.JobNumber)
	assert.Equal(t, uint64(2), step.CPUTimeMillis)
	assert.Equal(t, uint64(300), step.ElapsedMillis)
	assert.Equal(t, uint64(640), step.IOCount)
	assert.Equal(t, uint64(4), step.ReturnCode)
	assert.Equal(t, uint64(210), step.PagesRead)
	assert.Equal(t, uint64(118), step.EXCPCount)

	m := step.FlatMap()
	assert.Equal(t, uint64(30), m["record_type"])
	assert.Equal(t, "SYSA", m["system_id"])
	assert.Equal(t, "Job Step Termination", m["subtype_name"])
	assert.Equal(t, "USER001", m["owning_userid"])
	assert.Equal(t, uint64(2), m["cpu_time_ms"])
}

func TestIdentificationAtAlternateOffset(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := 32 // last candidate, not the default
	cpuBase := identBase + rev.CPUCandidates[0]

	fr := buildFrame(1, identBase, cpuBase+64)
	encodeInto(fr, identBase, stepIdentFields,
		map[string]string{"job_name": "ALTJOB", "userid": "USER002"}, nil)
	encodeInto(fr, cpuBase, timingFields, nil,
		map[string]uint64{"cpu_time": 1000})

	step := dispatch(t, fr).(*StepTermination)
	assert.Equal(t, "ALTJOB", step.JobName)
	assert.Equal(t, "USER002", step.UserID)
	assert.Equal(t, uint64(1), step.CPUTimeMillis)
}

func TestTimingLocatedByScan(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault
	cpuBase := identBase + 52 // past every candidate, inside the scan window

	fr := buildFrame(1, identBase, cpuBase+64)
	encodeInto(fr, identBase, stepIdentFields,
		map[string]string{"job_name": "SCANJOB"}, nil)
	encodeInto(fr, cpuBase, timingFields, nil,
		map[string]uint64{"cpu_time": 7500, "elapsed_time": 100})

	step := dispatch(t, fr).(*StepTermination)
	assert.Equal(t, uint64(7), step.CPUTimeMillis)
	assert.Equal(t, uint64(1000), step.ElapsedMillis)
}

func TestImplausibleCPUClampsToZero(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault
	// No plausible CPU anywhere; decode falls back to the first candidate
	// position and the ceiling zeroes the value read there.
	cpuBase := identBase + rev.CPUCandidates[0]

	fr := buildFrame(1, identBase, cpuBase+64)
	encodeInto(fr, identBase, stepIdentFields,
		map[string]string{"job_name": "BIGJOB"}, nil)
	encodeInto(fr, cpuBase, timingFields, nil,
		map[string]uint64{"cpu_time": 4_000_000_000}) // over an hour

	step := dispatch(t, fr).(*StepTermination)
	assert.Equal(t, uint64(0), step.CPUTimeMillis)
}

func TestDecodeJobTermination(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault

	fr := buildFrame(2, identBase, identBase+96)
	encodeInto(fr, identBase, jobTerminationFields,
		map[string]string{
			"job_name":   "PAYROLL",
			"job_number": "JOB00777",
			"userid":     "PAYUSER",
			"job_class":  "A",
		},
		map[string]uint64{
			"total_steps":          6,
			"failed_steps":         1,
			"job_termination_code": 8,
			"memory_allocated_mb":  512,
			"memory_max_used_mb":   480,
			"total_excp_count":     9000,
			"total_pages_read":     4200,
			"total_pages_written":  1100,
			"cpu_time":             3_000_000, // microseconds
			"elapsed_time":         1200,      // hundredths
			"service_units":        88000,
			"io_count":             15000,
		})

	job, ok := dispatch(t, fr).(*JobTermination)
	require.True(t, ok)

	assert.Equal(t, "PAYROLL", job.JobName)
	assert.Equal(t, "A", job.JobClass)
	assert.Equal(t, uint64(6), job.TotalSteps)
	assert.Equal(t, uint64(1), job.FailedSteps)
	assert.Equal(t, uint64(8), job.JobTerminationCode)
	assert.Equal(t, uint64(512), job.MemoryAllocatedMB)
	assert.Equal(t, uint64(3000), job.CPUTimeMillis)
	assert.Equal(t, uint64(12000), job.ElapsedMillis)

	m := job.FlatMap()
	assert.Equal(t, "Job Termination", m["subtype_name"])
	assert.Equal(t, uint64(4200), m["total_pages_read"])
}

func TestDecodeInitiationSubtypes(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault

	stepFr := buildFrame(3, identBase, identBase+80)
	encodeInto(stepFr, identBase, stepInitiationFields,
		map[string]string{
			"job_name":            "NIGHTJOB",
			"step_name":           "EXTRACT",
			"program_name":        "DSNUTILB",
			"procedure_step_name": "PS010",
			"accounting_code":     "ACCT9",
		},
		map[string]uint64{"region_mb": 256})

	step := dispatch(t, stepFr).(*StepInitiation)
	assert.Equal(t, "NIGHTJOB", step.JobName)
	assert.Equal(t, "DSNUTILB", step.ProgramName)
	assert.Equal(t, "PS010", step.ProcedureStepName)
	assert.Equal(t, uint64(256), step.RegionSizeMB)
	assert.Equal(t, uint64(256), step.FlatMap()["memory_region_size_mb"])

	jobFr := buildFrame(4, identBase, identBase+64)
	encodeInto(jobFr, identBase, jobInitiationFields,
		map[string]string{
			"job_name":               "NIGHTJOB",
			"job_class":              "B",
			"scheduling_environment": "PRODENV",
			"accounting_code":        "ACCT9",
		},
		map[string]uint64{"job_priority": 7})

	job := dispatch(t, jobFr).(*JobInitiation)
	assert.Equal(t, "B", job.JobClass)
	assert.Equal(t, "PRODENV", job.SchedulingEnvironment)
	assert.Equal(t, uint64(7), job.JobPriority)
}

func TestDecodeNetStep(t *testing.T) {
	rev := revision.Default().SMF30
	identBase := rev.IdentificationDefault

	fr := buildFrame(5, identBase, identBase+112)
	encodeInto(fr, identBase, netStepFields,
		map[string]string{
			"job_name":            "FTPJOB",
			"netstep_name":        "XFER01",
			"network_destination": "REMOTE.HOST.ONE",
			"network_protocol":    "FTP",
		},
		map[string]uint64{
			"bytes_transmitted":     1_048_576,
			"bytes_received":        2048,
			"network_response_time": 340, // already milliseconds
			"return_code":           0,
			"cpu_time":              45_000,
			"elapsed_time":          500,
			"io_count":              900,
			"service_units":         3300,
		})

	net, ok := dispatch(t, fr).(*NetStep)
	require.True(t, ok)

	assert.Equal(t, "FTPJOB", net.JobName)
	assert.Equal(t, "XFER01", net.NetStepName)
	assert.Equal(t, "REMOTE.HOST.ONE", net.NetworkDestination)
	assert.Equal(t, "FTP", net.NetworkProtocol)
	assert.Equal(t, uint64(1_048_576), net.BytesTransmitted)
	assert.Equal(t, uint64(340), net.NetworkResponseMilli)
	assert.Equal(t, uint64(45), net.CPUTimeMillis)
	assert.Equal(t, uint64(5000), net.ElapsedMillis)

	m := net.FlatMap()
	assert.Equal(t, "NetStep Completion", m["subtype_name"])
	assert.Equal(t, uint64(340), m["network_response_time_ms"])
}

func TestJobNamePlausible(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want bool
	}{
		{"alphabetic", ebcdic.Encode("TESTJOB1", 8), true},
		{"numeric lead", ebcdic.Encode("1COPY", 8), true},
		{"all padding", []byte{0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40}, false},
		{"all zero", make([]byte, 8), false},
		{"period lead", append([]byte{0x4B}, ebcdic.Encode("JOBX", 7)...), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := jobNamePlausible(tc.in); got != tc.want {
				t.Errorf("jobNamePlausible(% x) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
