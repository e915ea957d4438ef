package f1

import (
	"html/template"

	"pitlane/internal/api/app/dto"
)

// standingsPage модель данных для HTML страницы чемпионата.
type standingsPage struct {
	Title       string
	Description string
	Season      string
	Summary     string
	Rows        []standingsRow
}

// standingsRow одна строка таблицы чемпионата.
type standingsRow struct {
	Position   int
	DriverName string
	DriverCode string
	Team       string
	Points     float64
	Wins       int
	RowClass   string
}

func newStandingsPage(processed *dto.F1ProcessedResponse) *standingsPage {
	page := &standingsPage{
		Title:       processed.Title,
		Description: processed.Description,
		Season:      processed.Season,
		Summary:     processed.Summary,
	}

	standings, ok := processed.Items.([]*dto.ProcessedStanding)
	if !ok {
		return page
	}

	for _, s := range standings {
		page.Rows = append(page.Rows, standingsRow{
			Position:   s.Position,
			DriverName: s.DriverName,
			DriverCode: s.DriverCode,
			Team:       s.Team,
			Points:     s.Points,
			Wins:       s.Wins,
			RowClass:   podiumClass(s.Position),
		})
	}

	return page
}

// podiumClass возвращает CSS класс строки для призовых позиций.
func podiumClass(position int) string {
	switch position {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	default:
		return ""
	}
}

var standingsTemplate = template.Must(template.New("standings").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container {
            max-width: 900px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.2);
            overflow: hidden;
        }
        .header {
            background: #e10600;
            color: white;
            padding: 24px 32px;
        }
        .header h1 {
            margin: 0;
            font-size: 28px;
        }
        .header p {
            margin: 8px 0 0;
            opacity: 0.9;
        }
        .summary {
            padding: 16px 32px;
            background: #f8f8f8;
            border-bottom: 1px solid #e0e0e0;
            font-weight: 600;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            padding: 12px 16px;
            text-align: left;
            border-bottom: 1px solid #eee;
        }
        th {
            background: #15151e;
            color: white;
            text-transform: uppercase;
            font-size: 12px;
            letter-spacing: 1px;
        }
        tr:hover {
            background: #f5f5f5;
        }
        tr.gold td {
            background: #fff6d9;
        }
        tr.silver td {
            background: #f1f1f1;
        }
        tr.bronze td {
            background: #fbeadb;
        }
        .code {
            font-family: monospace;
            font-weight: bold;
            color: #e10600;
        }
        .empty {
            padding: 32px;
            text-align: center;
            color: #777;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>{{.Description}}</p>
        </div>
        <div class="summary">{{.Summary}}</div>
        {{if .Rows}}
        <table>
            <thead>
                <tr>
                    <th>Pos</th>
                    <th>Driver</th>
                    <th>Code</th>
                    <th>Team</th>
                    <th>Points</th>
                    <th>Wins</th>
                </tr>
            </thead>
            <tbody>
                {{range .Rows}}
                <tr class="{{.RowClass}}">
                    <td>{{.Position}}</td>
                    <td>{{.DriverName}}</td>
                    <td class="code">{{.DriverCode}}</td>
                    <td>{{.Team}}</td>
                    <td>{{printf "%.1f" .Points}}</td>
                    <td>{{.Wins}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
        {{else}}
        <div class="empty">No standings data available for season {{.Season}}.</div>
        {{end}}
    </div>
</body>
</html>
`))
