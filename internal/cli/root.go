package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/logging"
	"github.com/hbjs97/promptline/internal/workdir"
)

// EnvConfig는 기본 설정 파일 경로를 덮어쓰는 환경변수다.
const EnvConfig = "PROMPTLINE_CONFIG"

// App은 CLI 명령들이 공유하는 실행 환경이다.
type App struct {
	CfgPath string
	// HomeDir가 비어 있으면 os.UserHomeDir를 사용한다.
	HomeDir string
	Verbose bool
}

// NewApp은 기본 설정의 App을 생성한다.
func NewApp() *App {
	return &App{}
}

// NewRootCmd는 기본 App으로 promptline CLI의 루트 명령을 생성한다.
func NewRootCmd() *cobra.Command {
	return NewApp().NewRootCmd()
}

// NewRootCmd는 promptline CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "promptline",
		Short:        "셸 프롬프트 상태 줄 렌더러",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
			}
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = a.defaultConfigPath()
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.Verbose, "verbose", a.Verbose, "디버그 로그를 stderr로 출력")

	cmd.AddCommand(
		a.newPromptCmd(),
		a.newModuleCmd(),
		a.newInitCmd(),
		a.newExplainCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

func (a *App) homeDir() string {
	if a.HomeDir != "" {
		return a.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (a *App) defaultConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandHome(p, a.homeDir())
	}
	return filepath.Join(a.homeDir(), ".config", "promptline", "config.toml")
}

// expandHome는 선두의 ~를 home으로 바꾼다.
func expandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return strings.TrimSuffix(home, string(filepath.Separator)) + string(filepath.Separator) + rest
	}
	return p
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}

// session은 한 번의 명령 실행에 필요한 설정, 로거, 작업 컨텍스트다.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	wc     *workdir.Context
}

func (a *App) open(cmd *cobra.Command, path string) (*session, error) {
	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return nil, err
	}
	logger := a.newLogger(cmd.ErrOrStderr(), cfg)
	return &session{
		cfg:    cfg,
		logger: logger,
		wc:     a.newWorkdir(path, logger),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

func (a *App) newLogger(stderr io.Writer, cfg *config.Config) *zap.Logger {
	logger, err := logging.New(logging.Config{
		FilePath: cfg.LogFile,
		Level:    logging.ResolveLevel(cfg.LogLevel),
		Verbose:  a.Verbose,
		Stderr:   stderr,
	})
	if err != nil {
		// 로그 실패로 프롬프트를 막지 않는다.
		fmt.Fprintf(stderr, "경고: 로거 초기화 실패: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func (a *App) newWorkdir(path string, logger *zap.Logger) *workdir.Context {
	home := a.homeDir()
	return workdir.New(expandHome(path, home),
		workdir.WithHomeDir(home),
		workdir.WithLogger(logger),
	)
}
