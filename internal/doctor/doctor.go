// Package doctor diagnoses the environment the prompt runs in: config file,
// home and working directories, repository discovery and the log file.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/logging"
	"github.com/hbjs97/promptline/internal/repo"
	"github.com/hbjs97/promptline/internal/workdir"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckConfig는 설정 파일의 존재와 유효성을 확인한다.
func CheckConfig(path string) DiagResult {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음, 기본값 사용", path),
			Fix:     "필요하면 설정 파일을 생성",
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 수정", path),
		}
	}
	if len(cfg.Undecoded) > 0 {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: fmt.Sprintf("알 수 없는 키: %s", strings.Join(cfg.Undecoded, ", ")),
			Fix:     "오타 확인 또는 해당 키 삭제",
		}
	}
	return DiagResult{
		Name:    "config",
		Status:  StatusOK,
		Message: path,
	}
}

// CheckHome는 홈 디렉토리를 확인한다. 홈이 없으면 경로 축약이 동작하지 않는다.
func CheckHome(home string) DiagResult {
	if home == "" {
		return DiagResult{
			Name:    "home",
			Status:  StatusWarn,
			Message: "홈 디렉토리 확인 불가, ~ 축약 비활성",
			Fix:     "HOME 환경변수 설정",
		}
	}
	info, err := os.Stat(home)
	if err != nil || !info.IsDir() {
		return DiagResult{
			Name:    "home",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 는 디렉토리가 아님", home),
			Fix:     "HOME 환경변수 확인",
		}
	}
	return DiagResult{
		Name:    "home",
		Status:  StatusOK,
		Message: home,
	}
}

// CheckWorkdir는 현재 디렉토리 목록을 읽을 수 있는지 확인한다.
func CheckWorkdir(wc *workdir.Context) DiagResult {
	listing := wc.Entries(wc.CurrentDir)
	if err := listing.Err(); err != nil {
		return DiagResult{
			Name:    "workdir",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 읽기 실패: %v", wc.CurrentDir, err),
			Fix:     "디렉토리 권한 확인",
		}
	}
	return DiagResult{
		Name:    "workdir",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%d개 항목)", wc.CurrentDir, listing.Len()),
	}
}

// CheckRepo는 현재 디렉토리를 감싸는 리포지토리와 브랜치를 확인한다.
func CheckRepo(wc *workdir.Context) DiagResult {
	info := wc.Repo()
	if !info.Found {
		return DiagResult{
			Name:    "repo",
			Status:  StatusOK,
			Message: "리포지토리 밖",
		}
	}
	branch, err := repo.Branch(info.Root)
	if err != nil {
		return DiagResult{
			Name:    "repo",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s: HEAD 읽기 실패: %v", info.Root, err),
			Fix:     fmt.Sprintf("%s 확인", filepath.Join(info.Root, repo.Marker)),
		}
	}
	return DiagResult{
		Name:    "repo",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%s)", info.Root, branch),
	}
}

// CheckLogFile는 파일 로그가 켜져 있을 때 로그 파일에 쓸 수 있는지 확인한다.
func CheckLogFile(path, level string) DiagResult {
	if !logging.Enabled(level) {
		return DiagResult{
			Name:    "log_file",
			Status:  StatusOK,
			Message: "파일 로그 비활성",
		}
	}
	if path == "" {
		path = logging.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return logFileFailure(path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return logFileFailure(path, err)
	}
	f.Close()
	return DiagResult{
		Name:    "log_file",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%s)", path, level),
	}
}

func logFileFailure(path string, err error) DiagResult {
	return DiagResult{
		Name:    "log_file",
		Status:  StatusWarn,
		Message: fmt.Sprintf("%s 쓰기 불가: %v", path, err),
		Fix:     "log_file 경로 변경 또는 권한 확인",
	}
}

// RunAll은 모든 진단을 실행한다. 설정을 읽지 못하면 기본 설정으로 로그 파일을 확인한다.
func RunAll(cfgPath string, wc *workdir.Context) []DiagResult {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		cfg = config.Default()
	}

	var results []DiagResult
	results = append(results, CheckConfig(cfgPath))
	results = append(results, CheckHome(wc.Home()))
	results = append(results, CheckWorkdir(wc))
	results = append(results, CheckRepo(wc))
	results = append(results, CheckLogFile(cfg.LogFile, logging.ResolveLevel(cfg.LogLevel)))
	return results
}
