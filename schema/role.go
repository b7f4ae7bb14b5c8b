package schema

// Role is the single role an actor holds.
type Role string

const (
	// requesting organization
	RoleOperadorFusex  Role = "OPERADOR_FUSEX"
	RoleChefeFusex     Role = "CHEFE_FUSEX"
	RoleAuditor        Role = "AUDITOR"
	RoleChefeAuditoria Role = "CHEFE_AUDITORIA"
	RoleHomologador    Role = "HOMOLOGADOR"

	// requested organization
	RoleEspecialista     Role = "ESPECIALISTA"
	RoleChefeDivMedicina Role = "CHEFE_DIV_MEDICINA"
	RoleCotador          Role = "COTADOR"

	// regional command
	RoleChem                  Role = "CHEM"
	RoleChefeSecaoRegional    Role = "CHEFE_SECAO_REGIONAL"
	RoleOperadorSecaoRegional Role = "OPERADOR_SECAO_REGIONAL"

	// health directorate
	RoleDras            Role = "DRAS"
	RoleSubdiretorSaude Role = "SUBDIRETOR_SAUDE"

	RoleAdmin Role = "ADMIN"
)

// IsHighLevelReviewer reports whether the role rejects by unselecting the
// chosen response instead of rejecting the whole request.
func (r Role) IsHighLevelReviewer() bool {
	return r == RoleSubdiretorSaude || r == RoleDras
}
