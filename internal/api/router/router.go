package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/api/handler"
	"github.com/Haru0022/oc-staff-app/internal/api/middleware"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
	"github.com/Haru0022/oc-staff-app/pkg/redis"
)

// New ルーターを構築する
func New(h *handler.Handler, jwtManager *jwt.Manager, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(&cfg.Server.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuth(jwtManager, redisClient, logger)
	admin := middleware.RequireAdmin()

	v1 := r.Group("/api/v1")
	{
		// ── 認証 ──
		v1.POST("/auth/login", h.Auth.Login)
		v1.POST("/auth/logout", auth, h.Auth.Logout)
		v1.GET("/auth/me", auth, h.Auth.Me)

		// ── オープンキャンパス ──
		oc := v1.Group("/open-campuses", auth)
		{
			oc.GET("", h.OpenCampus.List)
			oc.GET("/:id", h.OpenCampus.GetDetail)
			oc.GET("/:id/ics", h.OpenCampus.ExportICS)

			// 登録・プレビュー・名簿出力は admin のみ
			oc.POST("", admin, h.OpenCampus.Register)
			oc.POST("/preview", admin, h.OpenCampus.Preview)
			oc.GET("/:id/export", admin, h.OpenCampus.Export)
		}

		// ── 参加者 ──
		p := v1.Group("/participants", auth)
		{
			p.GET("", h.Participant.List)
			p.GET("/:id", h.Participant.GetDetail)
			p.POST("/:id/events/:eventId/memos", h.Participant.AddMemo)
			p.PUT("/:id/events/:eventId/memos/:index", h.Participant.UpdateMemo)
			p.DELETE("/:id/events/:eventId/memos/:index", h.Participant.DeleteMemo)
		}

		// ── スタッフ ──
		st := v1.Group("/staffs", auth)
		{
			st.GET("", h.Staff.List)
			st.GET("/:id", h.Staff.GetDetail)
		}

		// ── アカウント管理（admin 専用）──
		users := v1.Group("/users", auth, admin)
		{
			users.POST("", h.User.CreateUsers)
			users.GET("", h.User.List)
			users.DELETE("/:id", h.User.Delete)
			users.PUT("/:id/role", h.User.UpdateRole)
			users.PUT("/:id/password", h.User.ResetPassword)
		}

		// ── モバイル閲覧用（読み取り専用ミラー）──
		mobile := v1.Group("/mobile", auth)
		{
			mobile.GET("/open-campuses", h.OpenCampus.List)
			mobile.GET("/open-campuses/:id", h.OpenCampus.GetDetail)
			mobile.GET("/open-campuses/:id/ics", h.OpenCampus.ExportICS)
			mobile.GET("/participants", h.Participant.List)
			mobile.GET("/participants/:id", h.Participant.GetDetail)
			mobile.GET("/staffs", h.Staff.List)
			mobile.GET("/staffs/:id", h.Staff.GetDetail)
		}
	}

	return r
}
