package library

import "strings"

// sdfRecord renders one library entry the way the vendor files are laid out.
func sdfRecord(name, formula, cas string) string {
	var sb strings.Builder
	sb.WriteString(name + "\n")
	sb.WriteString("  csChFnd80 01192314322D\n")
	sb.WriteString("\n")
	sb.WriteString("  2  1  0  0  0  0  0  0  0  0999 V2000\n")
	sb.WriteString("    0.0000    0.0000    0.0000 C   0  0\n")
	sb.WriteString("    1.5000    0.0000    0.0000 O   0  0\n")
	sb.WriteString("  1  2  1  0\n")
	sb.WriteString("M  END\n")
	if name != "" {
		sb.WriteString(">  <Name>\n" + name + "\n\n")
	}
	if formula != "" {
		sb.WriteString(">  <Formula>\n" + formula + "\n\n")
	}
	if cas != "" {
		sb.WriteString(">  <CAS>\n" + cas + "\n\n")
	}
	sb.WriteString("$$$$\n")
	return sb.String()
}

func sdfLibrary(records ...string) string {
	return strings.Join(records, "")
}

//Personal.AI order the ending
