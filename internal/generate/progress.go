package generate

// ProgressReporter provides callbacks for reporting generation progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnFileScanned is called after each file is read and extracted.
	// Calls are serialized.
	OnFileScanned(path string)

	// OnScanComplete is called once every file has been handled.
	OnScanComplete(classes, failed int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                  {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileScanned(path string)          {}
func (n *NoOpProgressReporter) OnScanComplete(classes, failed int) {}
