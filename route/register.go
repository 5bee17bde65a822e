package route

import (
	"net/http"
	"time"

	"git.thinkinpower.net/bindb/bdata"
	"git.thinkinpower.net/bindb/data"
	"git.thinkinpower.net/bindb/mod"
	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, db bdata.BinDatabase) {
	r.GET("/index", func(context *gin.Context) {
		context.String(http.StatusOK, "Hello bindb, date: %s", time.Now().Format(data.DateTimePattern))
	})
	r.GET("/lookup/:bin", binQuery(db))

	r.NoRoute(func(context *gin.Context) {
		context.JSON(http.StatusBadRequest, mod.ResponseValue{Code: mod.ResponseCodeMissingParams, Msg: "Bad request"})
	})
}
