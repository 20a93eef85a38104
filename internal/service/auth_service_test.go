package service

import (
	"testing"
	"time"

	"quiz_admin_backend/internal/config"
	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{
		Name:     "张三",
		Email:    "zhangsan@quiz.local",
		Password: "secret123",
		Role:     model.Student,
	}
	require.NoError(t, svc.Register(user))
	assert.NotEqual(t, "secret123", user.Password) // 入库前已加密

	result, err := svc.Login("zhangsan@quiz.local", "secret123", model.Student)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.ID)
	assert.Equal(t, model.Student, result.Role)

	claims, err := util.ParseJWT(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

// 自助注册只能产生学生账号，请求里塞别的角色也会被覆盖
func TestRegisterForcesStudentRole(t *testing.T) {
	svc, repo := newAuthService(t)

	user := &model.User{Name: "王五", Email: "wangwu@quiz.local", Password: "secret123", Role: model.Admin}
	require.NoError(t, svc.Register(user))

	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Student, stored.Role)

	// 管理员角色登录不进去
	_, err = svc.Login("wangwu@quiz.local", "secret123", model.Admin)
	assert.Error(t, err)

	result, err := svc.Login("wangwu@quiz.local", "secret123", model.Student)
	require.NoError(t, err)
	assert.Equal(t, model.Student, result.Role)
}

// 热替换 JWT 密钥后，旧密钥签发的令牌立即失效
func TestJWTSecretHotReload(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "赵六", Email: "zhaoliu@quiz.local", Password: "secret123"}
	require.NoError(t, svc.Register(user))

	old, err := svc.Login("zhaoliu@quiz.local", "secret123", model.Student)
	require.NoError(t, err)

	svc.Cfg.SetJWTConfig(config.JWTConfig{Secret: "rotated-secret", ExpireTime: time.Hour})

	_, err = util.ParseJWT(old.Token, svc.Cfg.JWTConfig().Secret)
	assert.Error(t, err)

	fresh, err := svc.Login("zhaoliu@quiz.local", "secret123", model.Student)
	require.NoError(t, err)
	claims, err := util.ParseJWT(fresh.Token, "rotated-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	first := &model.User{Name: "a", Email: "dup@quiz.local", Password: "secret123", Role: model.Student}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "b", Email: "dup@quiz.local", Password: "secret123", Role: model.Teacher}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "李四", Email: "lisi@quiz.local", Password: "secret123", Role: model.Teacher}
	require.NoError(t, svc.Register(user))

	// 密码错误
	_, err := svc.Login("lisi@quiz.local", "wrong", model.Teacher)
	assert.Error(t, err)

	// 角色不匹配：凭据正确也拒绝
	_, err = svc.Login("lisi@quiz.local", "secret123", model.Student)
	assert.Error(t, err)

	// 账号不存在
	_, err = svc.Login("nobody@quiz.local", "secret123", model.Student)
	assert.Error(t, err)
}
