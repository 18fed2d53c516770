package config

import "strconv"

// JudgeConfig holds judge orchestration settings. RunCache/RunBackend/BlobStore
// select the storage implementations wired at startup.
type JudgeConfig struct {
	// ProblemDir is the root of problem storage:
	// <ProblemDir>/<set>/<problemId>/testcase.yaml plus testcases/{in,out}.
	ProblemDir string
	// DataDir holds durable judge-run records and user status files.
	DataDir string
	// SubmissionDir is the root of the local submission artifact tree.
	SubmissionDir string
	// TimeLimitMs is the per-case execution budget.
	TimeLimitMs int64
	// Language is the language passed to the code executor.
	Language string
	// DefaultProblemSet is used when a request names no problem set.
	DefaultProblemSet string

	// RunCache selects the fast tier: "memory" or "redis".
	RunCache string
	// RunBackend selects the durable tier: "file" or "postgres".
	RunBackend string
	// BlobStore selects submission artifact storage: "fs" or "minio".
	BlobStore string
}

func NewJudgeConfig() *JudgeConfig {
	timeLimit, err := strconv.ParseInt(getEnv("JUDGE_TIME_LIMIT_MS", "5000"), 10, 64)
	if err != nil || timeLimit <= 0 {
		timeLimit = 5000
	}
	return &JudgeConfig{
		ProblemDir:        getEnv("PROBLEM_DIR", "./problems"),
		DataDir:           getEnv("JUDGE_DATA_DIR", "./data"),
		SubmissionDir:     getEnv("SUBMISSION_DIR", "./data/submissions"),
		TimeLimitMs:       timeLimit,
		Language:          getEnv("JUDGE_LANGUAGE", "python"),
		DefaultProblemSet: getEnv("DEFAULT_PROBLEM_SET", "getting-started"),
		RunCache:          getEnv("RUN_CACHE", "memory"),
		RunBackend:        getEnv("RUN_BACKEND", "file"),
		BlobStore:         getEnv("BLOB_STORE", "fs"),
	}
}
