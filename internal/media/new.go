package media

import "github.com/nguyentantai21042004/audioscribe/pkg/executor"

const defaultBinary = "ffprobe"

type implProber struct {
	exec   executor.Executor
	binary string
}

// New returns a Prober that shells out to binary (ffprobe when empty).
func New(exec executor.Executor, binary string) Prober {
	if binary == "" {
		binary = defaultBinary
	}
	return &implProber{
		exec:   exec,
		binary: binary,
	}
}
