// internal/controleprazo/dto.go
package controleprazo

// CriarControlePrazoRequest é usado em POST /api/controle-prazos.
// Datas aceitam YYYY-MM-DD, DD/MM/YYYY ou RFC3339.
type CriarControlePrazoRequest struct {
	Unidade         string `json:"unidade"`
	Oficio          string `json:"oficio"`
	LinkOficio      string `json:"linkOficio"`
	LinkResposta    string `json:"linkResposta"`
	NaoConformidade string `json:"naoConformidade"`
	DataRecebimento string `json:"dataRecebimento"`
	DataPrazo       string `json:"dataPrazo"`
	Status          string `json:"status"`
	Observacoes     string `json:"observacoes"`
}

// AtualizarControlePrazoRequest é usado em PATCH /api/controle-prazos/{id}.
// Campos como ponteiro permitem omitir no JSON o que não muda; só status também vale.
// Data como string vazia limpa o campo.
type AtualizarControlePrazoRequest struct {
	Unidade         *string `json:"unidade,omitempty"`
	Oficio          *string `json:"oficio,omitempty"`
	LinkOficio      *string `json:"linkOficio,omitempty"`
	LinkResposta    *string `json:"linkResposta,omitempty"`
	NaoConformidade *string `json:"naoConformidade,omitempty"`
	DataRecebimento *string `json:"dataRecebimento,omitempty"`
	DataPrazo       *string `json:"dataPrazo,omitempty"`
	Status          *string `json:"status,omitempty"`
	Observacoes     *string `json:"observacoes,omitempty"`
}

// somenteStatus indica um PATCH que altera apenas o status.
func (req AtualizarControlePrazoRequest) somenteStatus() bool {
	return req.Status != nil &&
		req.Unidade == nil && req.Oficio == nil && req.LinkOficio == nil && req.LinkResposta == nil &&
		req.NaoConformidade == nil && req.DataRecebimento == nil && req.DataPrazo == nil && req.Observacoes == nil
}
