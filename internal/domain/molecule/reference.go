package molecule

// Reference is one molecule of a fixed comparison set.
type Reference struct {
	// Code is the short column label, e.g. "Ado".
	Code   string
	Name   string
	SMILES string
}

// nucleosides is the canonical nucleoside panel in output column order.
var nucleosides = []Reference{
	{Code: "Ado", Name: "adenosine", SMILES: "C1=NC(=C2C(=N1)N(C=N2)C3C(C(C(O3)CO)O)O)N"},
	{Code: "Guo", Name: "guanosine", SMILES: "C1=NC2=C(N1C3C(C(C(O3)CO)O)O)N=C(NC2=O)N"},
	{Code: "Cyd", Name: "cytidine", SMILES: "C1=CN(C(=O)N=C1N)C2C(C(C(O2)CO)O)O"},
	{Code: "Urd", Name: "uridine", SMILES: "C1=CN(C(=O)NC1=O)C2C(C(C(O2)CO)O)O"},
	{Code: "dAdo", Name: "deoxyadenosine", SMILES: "C1C(C(OC1N2C=NC3=C(N=CN=C32)N)CO)O"},
	{Code: "dGuo", Name: "deoxyguanosine", SMILES: "C1C(C(OC1N2C=NC3=C2N=C(NC3=O)N)CO)O"},
	{Code: "dCyd", Name: "deoxycytidine", SMILES: "C1C(C(OC1N2C=CC(=NC2=O)N)CO)O"},
	{Code: "dUrd", Name: "deoxyuridine", SMILES: "C1C(C(OC1N2C=CC(=O)NC2=O)CO)O"},
	{Code: "dThd", Name: "thymidine", SMILES: "CC1=CN(C(=O)NC1=O)C2CC(C(O2)CO)O"},
	{Code: "dIno", Name: "deoxyinosine", SMILES: "C1C(C(OC1N2C=NC3=C2N=CNC3=O)CO)O"},
}

// Nucleosides returns a copy of the ten-member nucleoside reference panel:
// Ado, Guo, Cyd, Urd, dAdo, dGuo, dCyd, dUrd, dThd, dIno.
func Nucleosides() []Reference {
	out := make([]Reference, len(nucleosides))
	copy(out, nucleosides)
	return out
}

// Codes projects the column labels of refs.
func Codes(refs []Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Code
	}
	return out
}

//Personal.AI order the ending
