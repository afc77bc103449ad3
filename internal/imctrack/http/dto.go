package http

import (
	"time"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/service"
)

// userResponse is the outward-facing user shape. There is deliberately no
// password field to map into, so the hash cannot leak through serialization.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// bmiRecordResponse uses the Spanish wire keys the API has always exposed.
type bmiRecordResponse struct {
	ID           string    `json:"id"`
	Altura       float64   `json:"altura"`
	Peso         float64   `json:"peso"`
	Imc          float64   `json:"imc"`
	Categoria    string    `json:"categoria"`
	FechaCalculo time.Time `json:"fecha_calculo"`
}

func toBmiRecordResponse(rec domain.BmiRecord) bmiRecordResponse {
	return bmiRecordResponse{
		ID:           rec.ID,
		Altura:       rec.Height,
		Peso:         rec.Weight,
		Imc:          rec.Bmi,
		Categoria:    string(rec.Category),
		FechaCalculo: rec.ComputedAt,
	}
}

// calculationResponse is the POST /v1/imc payload: the stored record plus
// its owner.
type calculationResponse struct {
	bmiRecordResponse

	User userResponse `json:"user"`
}

type historyResponse struct {
	Historiales  []bmiRecordResponse `json:"historiales"`
	Pag          int64               `json:"pag"`
	Mostrar      int64               `json:"mostrar"`
	Total        int64               `json:"total"`
	TotalPaginas int64               `json:"totalPaginas"`
}

func toHistoryResponse(page service.HistoryPage) historyResponse {
	records := make([]bmiRecordResponse, 0, len(page.Records))
	for _, rec := range page.Records {
		records = append(records, toBmiRecordResponse(rec))
	}
	return historyResponse{
		Historiales:  records,
		Pag:          page.Page,
		Mostrar:      page.PerPage,
		Total:        page.Total,
		TotalPaginas: page.TotalPages,
	}
}

type seriesPointResponse struct {
	FechaCalculo time.Time `json:"fecha_calculo"`
	Imc          float64   `json:"imc"`
	Peso         float64   `json:"peso"`
}

type statsResponse struct {
	Promedio   float64 `json:"promedio"`
	Desviacion float64 `json:"desviacion"`
}

type categoryCountsResponse struct {
	CantBajoPeso  int `json:"cantBajoPeso"`
	CantNormal    int `json:"cantNormal"`
	CantSobrepeso int `json:"cantSobrepeso"`
	CantObeso     int `json:"cantObeso"`
}

type dashboardResponse struct {
	Historiales      []seriesPointResponse  `json:"historiales"`
	EstadisticasPeso statsResponse          `json:"estadisticasPeso"`
	EstadisticasImc  statsResponse          `json:"estadisticasImc"`
	Categorias       categoryCountsResponse `json:"categorias"`
}

func toDashboardResponse(d service.Dashboard) dashboardResponse {
	series := make([]seriesPointResponse, 0, len(d.Series))
	for _, p := range d.Series {
		series = append(series, seriesPointResponse{
			FechaCalculo: p.Date,
			Imc:          p.Bmi,
			Peso:         p.Weight,
		})
	}
	return dashboardResponse{
		Historiales:      series,
		EstadisticasPeso: statsResponse{Promedio: d.WeightStats.Mean, Desviacion: d.WeightStats.StdDev},
		EstadisticasImc:  statsResponse{Promedio: d.BmiStats.Mean, Desviacion: d.BmiStats.StdDev},
		Categorias: categoryCountsResponse{
			CantBajoPeso:  d.Categories.BajoPeso,
			CantNormal:    d.Categories.Normal,
			CantSobrepeso: d.Categories.Sobrepeso,
			CantObeso:     d.Categories.Obeso,
		},
	}
}
