package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/repository"
	"github.com/tjorim/rota-backend/internal/rotation"
)

// SeedRoster 从花名册 CSV 导入成员。
// 表头要求：用户名、姓名、邮箱、角色、班组
func SeedRoster(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/roster.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	columns := make(map[string]int)
	for i, header := range headers {
		columns[header] = i
	}

	for _, required := range []string{"用户名", "姓名", "邮箱", "角色", "班组"} {
		if _, ok := columns[required]; !ok {
			slog.Error("花名册缺少必需的列", "column", required)
			return
		}
	}

	inserted := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		username := row[columns["用户名"]]
		if username == "" {
			slog.Error("没有找到用户名", "row", row)
			continue
		}

		team, err := strconv.Atoi(row[columns["班组"]])
		if err != nil || team < 1 || team > rotation.TeamCount {
			slog.Error("班组编号无效", "username", username, "team", row[columns["班组"]])
			continue
		}

		// 已经存在的成员跳过
		if _, err := r.GetUserByUsername(username); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("获取成员失败", "error", err)
			continue
		}

		user := &domain.User{
			Username:     username,
			PasswordHash: "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO", // 初始密码，首次登录后应修改
			FullName:     row[columns["姓名"]],
			Email:        row[columns["邮箱"]],
			Role:         domain.Role(row[columns["角色"]]),
			Team:         int32(team),
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("插入成员失败", "error", err)
			continue
		}

		inserted++
	}

	slog.Info("导入花名册完成", "count", inserted)
}
