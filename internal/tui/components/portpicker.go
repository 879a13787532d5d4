package components

import (
	serial "github.com/allbin/serialmon"
	"github.com/allbin/serialmon/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyPort         = "port"
	columnKeyDescription  = "description"
	columnKeyManufacturer = "manufacturer"
	columnKeySerial       = "serial"
)

// PortPicker is the table of enumerated serial ports.
type PortPicker struct {
	table table.Model
	ports []serial.PortInfo
}

func NewPortPicker(ports []serial.PortInfo) *PortPicker {
	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 16),
		table.NewColumn(columnKeyDescription, "Description", 22),
		table.NewColumn(columnKeyManufacturer, "Manufacturer", 20),
		table.NewColumn(columnKeySerial, "Serial", 16),
	}

	rows := make([]table.Row, 0, len(ports))
	for _, info := range ports {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:         info.Path,
			columnKeyDescription:  info.Description,
			columnKeyManufacturer: info.Manufacturer,
			columnKeySerial:       info.SerialNumber,
		}))
	}

	return &PortPicker{
		table: table.New(columns).
			WithRows(rows).
			WithBaseStyle(styles.TableBaseStyle).
			Focused(true),
		ports: ports,
	}
}

// Selected returns the highlighted port path, or "" when empty.
func (p *PortPicker) Selected() string {
	if len(p.ports) == 0 {
		return ""
	}
	row := p.table.HighlightedRow()
	path, ok := row.Data[columnKeyPort].(string)
	if !ok {
		return ""
	}
	return path
}

func (p *PortPicker) Update(msg tea.Msg) (*PortPicker, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p *PortPicker) View() string {
	return p.table.View()
}
