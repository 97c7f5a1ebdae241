package routes

import (
	"github.com/gin-gonic/gin"

	rateControllers "github.com/Pattarapon0/dcommerce-sub002/controllers/rates"
)

func SetupRateRoutes(r *gin.Engine, deps Deps) {
	r.GET("/rates/:quote", rateControllers.GetRateHandler(deps.Rates, deps.BaseCurrency))
}
