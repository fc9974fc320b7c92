package smf110

import "github.com/bcallard/smfdump/pkg/record"

// Transaction is subtype 1: per-transaction performance statistics.
type Transaction struct {
	Header record.Header
	Ident  Identification

	TransactionID string
	ProgramName   string
	UserID        string
	TerminalID    string

	TransactionCount uint64
	CPUTimeMillis    float64
	ElapsedMillis    float64
	ResponseMillis   float64

	FileRequests uint64
	DB2Requests  uint64
	TSRequests   uint64
	TDRequests   uint64

	Reads   uint64
	Writes  uint64
	Browses uint64
	Deletes uint64

	Completed uint64
	Abended   uint64
	Errors    uint64
}

func (r *Transaction) Subtype() uint8      { return 1 }
func (r *Transaction) SubtypeName() string { return "Transaction Statistics" }

func (r *Transaction) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Ident, r.Subtype(), r.SubtypeName())
	m["transaction_id"] = r.TransactionID
	m["program_name"] = r.ProgramName
	m["userid"] = r.UserID
	m["terminal_id"] = r.TerminalID
	m["transaction_count"] = r.TransactionCount
	m["cpu_time_ms"] = record.RoundMillis(r.CPUTimeMillis)
	m["elapsed_time_ms"] = record.RoundMillis(r.ElapsedMillis)
	m["response_time_ms"] = record.RoundMillis(r.ResponseMillis)
	m["file_requests"] = r.FileRequests
	m["db2_requests"] = r.DB2Requests
	m["ts_requests"] = r.TSRequests
	m["td_requests"] = r.TDRequests
	m["reads"] = r.Reads
	m["writes"] = r.Writes
	m["browses"] = r.Browses
	m["deletes"] = r.Deletes
	m["completed"] = r.Completed
	m["abended"] = r.Abended
	m["errors"] = r.Errors
	return m
}

// File is subtype 2: per-file access statistics.
type File struct {
	Header record.Header
	Ident  Identification

	FileName    string
	DatasetName string
	FileType    string

	Reads   uint64
	Writes  uint64
	Updates uint64
	Deletes uint64
	Browses uint64

	AvgResponseMillis float64
	MaxResponseMillis float64
	TotalIOMillis     float64

	BufferRequests uint64
	BufferHits     uint64
	BufferMisses   uint64

	StringWaits    uint64
	StringRequests uint64

	IOErrors       uint64
	RecordNotFound uint64
	DuplicateKey   uint64
}

func (r *File) Subtype() uint8      { return 2 }
func (r *File) SubtypeName() string { return "File Statistics" }

func (r *File) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Ident, r.Subtype(), r.SubtypeName())
	m["file_name"] = r.FileName
	m["dataset_name"] = r.DatasetName
	m["file_type"] = r.FileType
	m["reads"] = r.Reads
	m["writes"] = r.Writes
	m["updates"] = r.Updates
	m["deletes"] = r.Deletes
	m["browses"] = r.Browses
	m["avg_response_time_ms"] = record.RoundMillis(r.AvgResponseMillis)
	m["max_response_time_ms"] = record.RoundMillis(r.MaxResponseMillis)
	m["total_io_time_ms"] = record.RoundMillis(r.TotalIOMillis)
	m["buffer_requests"] = r.BufferRequests
	m["buffer_hits"] = r.BufferHits
	m["buffer_misses"] = r.BufferMisses

	ratio := 0.0
	if r.BufferRequests > 0 {
		ratio = float64(r.BufferHits) / float64(r.BufferRequests) * 100
	}
	m["buffer_hit_ratio_pct"] = record.RoundPct(ratio)

	m["string_waits"] = r.StringWaits
	m["string_requests"] = r.StringRequests
	m["io_errors"] = r.IOErrors
	m["record_not_found"] = r.RecordNotFound
	m["duplicate_key"] = r.DuplicateKey
	return m
}

// Program is subtype 3: per-program load and execution statistics.
type Program struct {
	Header record.Header
	Ident  Identification

	ProgramName string
	Language    string
	Library     string
	Location    string

	ProgramLength uint64
	LoadCount     uint64
	UseCount      uint64
	FetchCount    uint64

	CPUTimeMillis float64
	ElapsedMillis float64

	StorageUsed       uint64
	StorageViolations uint64

	Abends            uint64
	CompressionErrors uint64
}

func (r *Program) Subtype() uint8      { return 3 }
func (r *Program) SubtypeName() string { return "Program Statistics" }

func (r *Program) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Ident, r.Subtype(), r.SubtypeName())
	m["program_name"] = r.ProgramName
	m["language"] = r.Language
	m["library"] = r.Library
	m["location"] = r.Location
	m["program_length_bytes"] = r.ProgramLength
	m["load_count"] = r.LoadCount
	m["use_count"] = r.UseCount
	m["fetch_count"] = r.FetchCount
	m["cpu_time_ms"] = record.RoundMillis(r.CPUTimeMillis)
	m["elapsed_time_ms"] = record.RoundMillis(r.ElapsedMillis)
	m["storage_used_bytes"] = r.StorageUsed
	m["storage_violations"] = r.StorageViolations
	m["abends"] = r.Abends
	m["compression_errors"] = r.CompressionErrors
	return m
}

// Terminal is subtype 4: per-terminal session and traffic statistics.
type Terminal struct {
	Header record.Header
	Ident  Identification

	TerminalID   string
	NetName      string
	TerminalType string

	SessionsStarted   uint64
	SessionsEnded     uint64
	TotalTransactions uint64

	MessagesSent     uint64
	MessagesReceived uint64
	BytesSent        uint64
	BytesReceived    uint64

	AvgResponseMillis float64
	MaxResponseMillis float64

	TransmissionErrors uint64
	TimeoutErrors      uint64
}

func (r *Terminal) Subtype() uint8      { return 4 }
func (r *Terminal) SubtypeName() string { return "Terminal Statistics" }

func (r *Terminal) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Ident, r.Subtype(), r.SubtypeName())
	m["terminal_id"] = r.TerminalID
	m["netname"] = r.NetName
	m["terminal_type"] = r.TerminalType
	m["sessions_started"] = r.SessionsStarted
	m["sessions_ended"] = r.SessionsEnded
	m["total_transactions"] = r.TotalTransactions
	m["messages_sent"] = r.MessagesSent
	m["messages_received"] = r.MessagesReceived
	m["bytes_sent"] = r.BytesSent
	m["bytes_received"] = r.BytesReceived
	m["avg_response_time_ms"] = record.RoundMillis(r.AvgResponseMillis)
	m["max_response_time_ms"] = record.RoundMillis(r.MaxResponseMillis)
	m["transmission_errors"] = r.TransmissionErrors
	m["timeout_errors"] = r.TimeoutErrors
	return m
}

// Storage is subtype 5: dynamic storage area pool statistics.
type Storage struct {
	Header record.Header
	Ident  Identification

	PoolName string
	PoolType string

	TotalStorage uint64
	UsedStorage  uint64
	FreeStorage  uint64
	PeakStorage  uint64

	GetmainRequests  uint64
	FreemainRequests uint64
	FailedGetmains   uint64

	AvgAllocationMicros uint64
	MaxAllocationMicros uint64

	Fragments       uint64
	LargestFragment uint64
}

func (r *Storage) Subtype() uint8      { return 5 }
func (r *Storage) SubtypeName() string { return "Storage Statistics" }

func (r *Storage) FlatMap() map[string]any {
	m := baseMap(r.Header, r.Ident, r.Subtype(), r.SubtypeName())
	m["pool_name"] = r.PoolName
	m["pool_type"] = r.PoolType
	m["total_storage_bytes"] = r.TotalStorage
	m["used_storage_bytes"] = r.UsedStorage
	m["free_storage_bytes"] = r.FreeStorage
	m["peak_storage_bytes"] = r.PeakStorage

	utilization := 0.0
	if r.TotalStorage > 0 {
		utilization = float64(r.UsedStorage) / float64(r.TotalStorage) * 100
	}
	m["utilization_pct"] = record.RoundPct(utilization)

	m["getmain_requests"] = r.GetmainRequests
	m["freemain_requests"] = r.FreemainRequests
	m["failed_getmains"] = r.FailedGetmains
	m["avg_allocation_time_us"] = r.AvgAllocationMicros
	m["max_allocation_time_us"] = r.MaxAllocationMicros
	m["fragments"] = r.Fragments
	m["largest_fragment_bytes"] = r.LargestFragment
	return m
}
