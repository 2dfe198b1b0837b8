package comentario

import "time"

// CriarComentarioRequest é usado em POST /api/controle-prazos/{id}/comentarios
type CriarComentarioRequest struct {
	Texto string `json:"texto"`
}

type AutorDTO struct {
	Tipo  string `json:"type"` // "usuario" | "system"
	ID    *uint  `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

type ComentarioDTO struct {
	ID              uint      `json:"id"`
	ControlePrazoID uint      `json:"controlePrazoId"`
	Texto           string    `json:"texto"`
	System          bool      `json:"system"`
	CreatedAt       time.Time `json:"createdAt"`
	Autor           AutorDTO  `json:"author"`
}

func toDTO(c Comentario) ComentarioDTO {
	out := ComentarioDTO{
		ID:              c.ID,
		ControlePrazoID: c.ControlePrazoID,
		Texto:           c.Texto,
		System:          c.System,
		CreatedAt:       c.CreatedAt,
	}
	if c.System {
		out.Autor = AutorDTO{Tipo: "system"}
		return out
	}
	id := c.AutorID
	out.Autor = AutorDTO{Tipo: "usuario", ID: &id, Email: c.AutorEmail}
	return out
}

func toDTOs(list []Comentario) []ComentarioDTO {
	out := make([]ComentarioDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out
}
