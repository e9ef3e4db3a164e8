package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fyb-checkin/internal/console"
	"fyb-checkin/internal/dto"
)

// options 全局参数，未指定时从环境变量读取
type options struct {
	server   string
	username string
	password string
	timeout  time.Duration
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "fyb-console",
		Short:        "FYB 付款核验与签到管理控制台",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", envOr("FYB_CONSOLE_SERVER", "http://localhost:5000"), "Admin API 地址")
	rootCmd.PersistentFlags().StringVarP(&opts.username, "username", "u", os.Getenv("FYB_CONSOLE_USERNAME"), "管理员用户名")
	rootCmd.PersistentFlags().StringVarP(&opts.password, "password", "p", os.Getenv("FYB_CONSOLE_PASSWORD"), "管理员密码")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "单次请求超时")

	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(statsCmd(opts))
	rootCmd.AddCommand(transitionCmd(opts, "verify", "标记付款为已核验", (*console.Client).Verify))
	rootCmd.AddCommand(transitionCmd(opts, "checkin", "签到", (*console.Client).CheckIn))
	rootCmd.AddCommand(transitionCmd(opts, "uncheck", "取消签到（回到已核验）", (*console.Client).Uncheck))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ── 子命令 ──

func listCmd(opts *options) *cobra.Command {
	var filter dto.SubmissionFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出提交记录（按姓名排序）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := console.ValidateStatus(filter.Status); err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := login(ctx, opts)
			if err != nil {
				return err
			}

			records, err := client.List(ctx)
			if err != nil {
				return err
			}

			rows := console.View(records, filter)
			renderTable(cmd.OutOrStdout(), rows)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d submissions\n", len(rows), len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "按姓名或手机号搜索")
	cmd.Flags().StringVar(&filter.Status, "status", console.StatusAll, "状态筛选: all|pending|verified|checked_in")

	return cmd
}

func statsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "显示各状态数量",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := login(ctx, opts)
			if err != nil {
				return err
			}

			stats, err := client.Stats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %-12s %d\n", "Total:", stats.Total)
			fmt.Fprintf(out, "  %-12s %d\n", "Pending:", stats.Pending)
			fmt.Fprintf(out, "  %-12s %d\n", "Verified:", stats.Verified)
			fmt.Fprintf(out, "  %-12s %d\n", "Checked In:", stats.CheckedIn)
			return nil
		},
	}
}

type transitionFunc func(*console.Client, context.Context, uint) (*dto.SubmissionResponse, error)

func transitionCmd(opts *options, name, short string, apply transitionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 0)
			if err != nil || id == 0 {
				return fmt.Errorf("无效的记录 ID: %s", args[0])
			}

			ctx := cmd.Context()
			client, err := login(ctx, opts)
			if err != nil {
				return err
			}

			sub, err := apply(client, ctx, uint(id))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s → %s\n", sub.ID, sub.Name, console.StatusLabel(sub.Status))
			return nil
		},
	}
}

// ── 辅助函数 ──

func login(ctx context.Context, opts *options) (*console.Client, error) {
	if opts.username == "" || opts.password == "" {
		return nil, errors.New("缺少管理员凭据: 使用 --username/--password 或 FYB_CONSOLE_USERNAME/FYB_CONSOLE_PASSWORD")
	}

	client, err := console.NewClient(opts.server, opts.timeout)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, opts.username, opts.password); err != nil {
		return nil, fmt.Errorf("登录失败: %w", err)
	}
	return client, nil
}

func renderTable(w io.Writer, rows []dto.SubmissionResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tSTATUS\tNEXT\tSCREENSHOT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Phone, console.StatusLabel(r.Status), console.NextAction(r.Status), r.Screenshot)
	}
	tw.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
