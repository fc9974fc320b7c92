package smf110

import (
	"github.com/bcallard/smfdump/pkg/record"
	"github.com/bcallard/smfdump/pkg/revision"
)

// Descriptor tables, offsets relative to the revision's payload base.
// Time fields carry plausibility ceilings; counters pass through raw.

var transactionFields = []record.FieldSpec{
	{Name: "transaction_id", Offset: 0, Width: 4, Kind: record.Text},
	{Name: "program_name", Offset: 4, Width: 8, Kind: record.Text},
	{Name: "userid", Offset: 12, Width: 8, Kind: record.Text},
	{Name: "terminal_id", Offset: 20, Width: 4, Kind: record.Text},
	{Name: "transaction_count", Offset: 24, Width: 4, Kind: record.Uint32},
	{Name: "cpu_time", Offset: 28, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "elapsed_time", Offset: 32, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "response_time", Offset: 36, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "file_requests", Offset: 40, Width: 4, Kind: record.Uint32},
	{Name: "db2_requests", Offset: 44, Width: 4, Kind: record.Uint32},
	{Name: "ts_requests", Offset: 48, Width: 4, Kind: record.Uint32},
	{Name: "td_requests", Offset: 52, Width: 4, Kind: record.Uint32},
	{Name: "reads", Offset: 56, Width: 4, Kind: record.Uint32},
	{Name: "writes", Offset: 60, Width: 4, Kind: record.Uint32},
	{Name: "browses", Offset: 64, Width: 4, Kind: record.Uint32},
	{Name: "deletes", Offset: 68, Width: 4, Kind: record.Uint32},
	{Name: "completed", Offset: 72, Width: 4, Kind: record.Uint32},
	{Name: "abended", Offset: 76, Width: 4, Kind: record.Uint32},
	{Name: "errors", Offset: 80, Width: 4, Kind: record.Uint32},
}

func decodeTransaction(rev revision.SMF110) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		f := record.DecodeFields(fr, rev.PayloadBase, transactionFields)
		return &Transaction{
			Header:           hdr,
			Ident:            decodeIdentification(fr, rev),
			TransactionID:    f.Text("transaction_id"),
			ProgramName:      f.Text("program_name"),
			UserID:           f.Text("userid"),
			TerminalID:       f.Text("terminal_id"),
			TransactionCount: f.Count("transaction_count"),
			CPUTimeMillis:    f.Millis("cpu_time"),
			ElapsedMillis:    f.Millis("elapsed_time"),
			ResponseMillis:   f.Millis("response_time"),
			FileRequests:     f.Count("file_requests"),
			DB2Requests:      f.Count("db2_requests"),
			TSRequests:       f.Count("ts_requests"),
			TDRequests:       f.Count("td_requests"),
			Reads:            f.Count("reads"),
			Writes:           f.Count("writes"),
			Browses:          f.Count("browses"),
			Deletes:          f.Count("deletes"),
			Completed:        f.Count("completed"),
			Abended:          f.Count("abended"),
			Errors:           f.Count("errors"),
		}, nil
	}
}

var fileFields = []record.FieldSpec{
	{Name: "file_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "dataset_name", Offset: 8, Width: 44, Kind: record.Text},
	{Name: "file_type", Offset: 52, Width: 4, Kind: record.Text},
	{Name: "reads", Offset: 56, Width: 4, Kind: record.Uint32},
	{Name: "writes", Offset: 60, Width: 4, Kind: record.Uint32},
	{Name: "updates", Offset: 64, Width: 4, Kind: record.Uint32},
	{Name: "deletes", Offset: 68, Width: 4, Kind: record.Uint32},
	{Name: "browses", Offset: 72, Width: 4, Kind: record.Uint32},
	{Name: "avg_response", Offset: 76, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "max_response", Offset: 80, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "total_io", Offset: 84, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "buffer_requests", Offset: 88, Width: 4, Kind: record.Uint32},
	{Name: "buffer_hits", Offset: 92, Width: 4, Kind: record.Uint32},
	{Name: "buffer_misses", Offset: 96, Width: 4, Kind: record.Uint32},
	{Name: "string_waits", Offset: 100, Width: 4, Kind: record.Uint32},
	{Name: "string_requests", Offset: 104, Width: 4, Kind: record.Uint32},
	{Name: "io_errors", Offset: 108, Width: 4, Kind: record.Uint32},
	{Name: "record_not_found", Offset: 112, Width: 4, Kind: record.Uint32},
	{Name: "duplicate_key", Offset: 116, Width: 4, Kind: record.Uint32},
}

func decodeFile(rev revision.SMF110) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		f := record.DecodeFields(fr, rev.PayloadBase, fileFields)
		return &File{
			Header:            hdr,
			Ident:             decodeIdentification(fr, rev),
			FileName:          f.Text("file_name"),
			DatasetName:       f.Text("dataset_name"),
			FileType:          f.Text("file_type"),
			Reads:             f.Count("reads"),
			Writes:            f.Count("writes"),
			Updates:           f.Count("updates"),
			Deletes:           f.Count("deletes"),
			Browses:           f.Count("browses"),
			AvgResponseMillis: f.Millis("avg_response"),
			MaxResponseMillis: f.Millis("max_response"),
			TotalIOMillis:     f.Millis("total_io"),
			BufferRequests:    f.Count("buffer_requests"),
			BufferHits:        f.Count("buffer_hits"),
			BufferMisses:      f.Count("buffer_misses"),
			StringWaits:       f.Count("string_waits"),
			StringRequests:    f.Count("string_requests"),
			IOErrors:          f.Count("io_errors"),
			RecordNotFound:    f.Count("record_not_found"),
			DuplicateKey:      f.Count("duplicate_key"),
		}, nil
	}
}

var programFields = []record.FieldSpec{
	{Name: "program_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "language", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "library", Offset: 16, Width: 8, Kind: record.Text},
	{Name: "location", Offset: 24, Width: 8, Kind: record.Text},
	{Name: "program_length", Offset: 32, Width: 4, Kind: record.Uint32},
	{Name: "load_count", Offset: 36, Width: 4, Kind: record.Uint32},
	{Name: "use_count", Offset: 40, Width: 4, Kind: record.Uint32},
	{Name: "fetch_count", Offset: 44, Width: 4, Kind: record.Uint32},
	{Name: "cpu_time", Offset: 48, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "elapsed_time", Offset: 52, Width: 4, Kind: record.Uint32, Scale: record.CentisToMillis, Max: record.MaxElapsedCentis},
	{Name: "storage_used", Offset: 56, Width: 4, Kind: record.Uint32},
	{Name: "storage_violations", Offset: 60, Width: 4, Kind: record.Uint32},
	{Name: "abends", Offset: 64, Width: 4, Kind: record.Uint32},
	{Name: "compression_errors", Offset: 68, Width: 4, Kind: record.Uint32},
}

func decodeProgram(rev revision.SMF110) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		f := record.DecodeFields(fr, rev.PayloadBase, programFields)
		return &Program{
			Header:            hdr,
			Ident:             decodeIdentification(fr, rev),
			ProgramName:       f.Text("program_name"),
			Language:          f.Text("language"),
			Library:           f.Text("library"),
			Location:          f.Text("location"),
			ProgramLength:     f.Count("program_length"),
			LoadCount:         f.Count("load_count"),
			UseCount:          f.Count("use_count"),
			FetchCount:        f.Count("fetch_count"),
			CPUTimeMillis:     f.Millis("cpu_time"),
			ElapsedMillis:     f.Millis("elapsed_time"),
			StorageUsed:       f.Count("storage_used"),
			StorageViolations: f.Count("storage_violations"),
			Abends:            f.Count("abends"),
			CompressionErrors: f.Count("compression_errors"),
		}, nil
	}
}

var terminalFields = []record.FieldSpec{
	{Name: "terminal_id", Offset: 0, Width: 4, Kind: record.Text},
	{Name: "netname", Offset: 4, Width: 8, Kind: record.Text},
	{Name: "terminal_type", Offset: 12, Width: 4, Kind: record.Text},
	{Name: "sessions_started", Offset: 16, Width: 4, Kind: record.Uint32},
	{Name: "sessions_ended", Offset: 20, Width: 4, Kind: record.Uint32},
	{Name: "total_transactions", Offset: 24, Width: 4, Kind: record.Uint32},
	{Name: "messages_sent", Offset: 28, Width: 4, Kind: record.Uint32},
	{Name: "messages_received", Offset: 32, Width: 4, Kind: record.Uint32},
	{Name: "bytes_sent", Offset: 36, Width: 4, Kind: record.Uint32},
	{Name: "bytes_received", Offset: 40, Width: 4, Kind: record.Uint32},
	{Name: "avg_response", Offset: 44, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "max_response", Offset: 48, Width: 4, Kind: record.Uint32, Scale: record.MicrosToMillis, Max: record.MaxCPUMicros},
	{Name: "transmission_errors", Offset: 52, Width: 4, Kind: record.Uint32},
	{Name: "timeout_errors", Offset: 56, Width: 4, Kind: record.Uint32},
}

func decodeTerminal(rev revision.SMF110) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		f := record.DecodeFields(fr, rev.PayloadBase, terminalFields)
		return &Terminal{
			Header:             hdr,
			Ident:              decodeIdentification(fr, rev),
			TerminalID:         f.Text("terminal_id"),
			NetName:            f.Text("netname"),
			TerminalType:       f.Text("terminal_type"),
			SessionsStarted:    f.Count("sessions_started"),
			SessionsEnded:      f.Count("sessions_ended"),
			TotalTransactions:  f.Count("total_transactions"),
			MessagesSent:       f.Count("messages_sent"),
			MessagesReceived:   f.Count("messages_received"),
			BytesSent:          f.Count("bytes_sent"),
			BytesReceived:      f.Count("bytes_received"),
			AvgResponseMillis:  f.Millis("avg_response"),
			MaxResponseMillis:  f.Millis("max_response"),
			TransmissionErrors: f.Count("transmission_errors"),
			TimeoutErrors:      f.Count("timeout_errors"),
		}, nil
	}
}

var storageFields = []record.FieldSpec{
	{Name: "pool_name", Offset: 0, Width: 8, Kind: record.Text},
	{Name: "pool_type", Offset: 8, Width: 8, Kind: record.Text},
	{Name: "total_storage", Offset: 16, Width: 4, Kind: record.Uint32},
	{Name: "used_storage", Offset: 20, Width: 4, Kind: record.Uint32},
	{Name: "free_storage", Offset: 24, Width: 4, Kind: record.Uint32},
	{Name: "peak_storage", Offset: 28, Width: 4, Kind: record.Uint32},
	{Name: "getmain_requests", Offset: 32, Width: 4, Kind: record.Uint32},
	{Name: "freemain_requests", Offset: 36, Width: 4, Kind: record.Uint32},
	{Name: "failed_getmains", Offset: 40, Width: 4, Kind: record.Uint32},
	{Name: "avg_allocation", Offset: 44, Width: 4, Kind: record.Uint32},
	{Name: "max_allocation", Offset: 48, Width: 4, Kind: record.Uint32},
	{Name: "fragments", Offset: 52, Width: 4, Kind: record.Uint32},
	{Name: "largest_fragment", Offset: 56, Width: 4, Kind: record.Uint32},
}

func decodeStorage(rev revision.SMF110) record.DecodeFunc {
	return func(fr []byte, hdr record.Header) (record.Record, error) {
		f := record.DecodeFields(fr, rev.PayloadBase, storageFields)
		return &Storage{
			Header:              hdr,
			Ident:               decodeIdentification(fr, rev),
			PoolName:            f.Text("pool_name"),
			PoolType:            f.Text("pool_type"),
			TotalStorage:        f.Count("total_storage"),
			UsedStorage:         f.Count("used_storage"),
			FreeStorage:         f.Count("free_storage"),
			PeakStorage:         f.Count("peak_storage"),
			GetmainRequests:     f.Count("getmain_requests"),
			FreemainRequests:    f.Count("freemain_requests"),
			FailedGetmains:      f.Count("failed_getmains"),
			AvgAllocationMicros: f.Count("avg_allocation"),
			MaxAllocationMicros: f.Count("max_allocation"),
			Fragments:           f.Count("fragments"),
			LargestFragment:     f.Count("largest_fragment"),
		}, nil
	}
}
