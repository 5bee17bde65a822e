package route

import (
	"net/http"

	"git.thinkinpower.net/bindb/bdata"
	"git.thinkinpower.net/bindb/mod"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func binQuery(db bdata.BinDatabase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var (
			record mod.Record
			err    error
		)
		if record, err = db.Search(ctx.Param("bin")); err != nil {
			status, code := lookupFailure(err)
			ctx.JSON(status, mod.ResponseValue{Code: code, Msg: err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, mod.ResponseData{
			ResponseValue: mod.ResponseValue{Success: true, Code: mod.ResponseCodeSuccess, Msg: "ok"},
			Data:          record})
	}
}

func lookupFailure(err error) (int, int) {
	var (
		invalid   bdata.InvalidFormatError
		notFound  bdata.NotFoundError
		notLoaded bdata.NotLoadedError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, mod.ResponseCodeInvalidParams
	case errors.As(err, &notFound):
		return http.StatusNotFound, mod.ResponseCodeNotFound
	case errors.As(err, &notLoaded):
		return http.StatusServiceUnavailable, mod.ResponseCodeNotLoaded
	default:
		return http.StatusInternalServerError, mod.ResponseCodeFailure
	}
}
