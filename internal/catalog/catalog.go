package catalog

// Task pairs the message shown when a simulated task fails with the one shown
// once it finally goes through.
type Task struct {
	Failure string `json:"failure"`
	Success string `json:"success"`
}

// Commands are the routine operations shown on the normal path.
var Commands = []string{
	"Analyzing data streams",
	"Compiling resources",
	"Running diagnostic checks",
	"Optimizing performance metrics",
	"Decrypting secure partitions",
	"Validating encryption keys",
	"Synchronizing with remote server",
	"Checking system logs",
	"Indexing database records",
}

var Warnings = []string{
	"Memory usage exceeded threshold",
	"Unusual network activity detected",
	"Packet loss detected in secure channel",
	"Performance bottleneck identified",
}

var Errors = []Task{
	{Failure: "Unable to establish a secure connection", Success: "Connection established successfully"},
	{Failure: "Corrupted database index found", Success: "Database re-indexed successfully"},
	{Failure: "Indexing Error: Out of Memory", Success: "Indexing resumed with optimized memory usage"},
}
