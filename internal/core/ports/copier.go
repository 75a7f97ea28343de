package ports

// StaticCopier copies a static asset tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=copier.go -destination=mocks/mock_copier.go -package=mocks
type StaticCopier interface {
	// Copy copies every file under staticDir into outDir, preserving relative paths.
	// It returns the copied paths relative to outDir. Failures are reported as a *domain.CopyError.
	Copy(staticDir, outDir string) ([]string, error)
}
