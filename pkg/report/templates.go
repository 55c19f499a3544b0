package report

const baseCSS = `
    :root { --bg: #1a1a2e; --card-bg: #16213e; --text: #eee; --text-muted: #888; --accent: #4a90d9; --border: #0f3460; }
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: var(--bg); color: var(--text); line-height: 1.6; padding: 20px; }
    .container { max-width: 1200px; margin: 0 auto; }
    header { text-align: center; padding: 30px 0; border-bottom: 1px solid var(--border); margin-bottom: 30px; }
    h1 { color: var(--accent); margin-bottom: 10px; }
    .subtitle { color: var(--text-muted); font-size: 1.1em; }
    .back { color: var(--accent); text-decoration: none; display: inline-block; margin-bottom: 20px; }
    .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin-bottom: 40px; }
    .stat-card { background: var(--card-bg); padding: 20px; border-radius: 10px; text-align: center; border: 1px solid var(--border); }
    .stat-value { font-size: 2em; font-weight: bold; color: var(--accent); }
    .stat-label { color: var(--text-muted); font-size: 0.9em; }
    section { background: var(--card-bg); border-radius: 10px; padding: 25px; margin-bottom: 30px; border: 1px solid var(--border); }
    h2 { color: var(--accent); margin-bottom: 20px; padding-bottom: 10px; border-bottom: 1px solid var(--border); }
    h3 { color: var(--text); margin: 20px 0 10px; }
    table { width: 100%; border-collapse: collapse; margin: 15px 0; font-size: 0.9em; }
    th, td { padding: 10px; text-align: left; border-bottom: 1px solid var(--border); }
    th { background: rgba(74, 144, 217, 0.2); color: var(--accent); }
    tr:hover { background: rgba(255,255,255,0.05); }
    code, .error-msg { font-family: monospace; font-size: 0.85em; background: rgba(0,0,0,0.3); padding: 2px 6px; border-radius: 4px; word-break: break-all; }
    .error-msg { white-space: pre-wrap; display: block; margin: 5px 0; padding: 8px; }
    .timestamp { color: var(--text-muted); font-size: 0.8em; margin-top: 30px; text-align: center; }
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Job Error Analysis Dashboard</title>
    <style>` + baseCSS + `</style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Job Error Analysis</h1>
            <p class="subtitle">{{.DateMin}} to {{.DateMax}}</p>
        </header>

        <div class="stats">
            <div class="stat-card"><div class="stat-value">{{.TotalRecords}}</div><div class="stat-label">Total Errors</div></div>
            <div class="stat-card"><div class="stat-value">{{.UniqueTools}}</div><div class="stat-label">Unique Tools</div></div>
            <div class="stat-card"><div class="stat-value">{{.UniqueUsers}}</div><div class="stat-label">Unique Users</div></div>
            <div class="stat-card"><div class="stat-value">{{.PeakDay}}</div><div class="stat-label">Peak Day Errors</div></div>
        </div>

        <section>
            <h2>1. Tool Failure Analysis</h2>
            <table>
                <tr><th>Tool</th><th>Errors</th><th>Details</th></tr>
                {{range .TopTools}}<tr><td>{{.Key}}</td><td>{{.Count}}</td><td><a href="tools/{{.Key | safeName}}.html" style="color: var(--accent);">View errors &rarr;</a></td></tr>
                {{end}}
            </table>
        </section>

        <section>
            <h2>2. Error Classification</h2>
            <h3>Exit Codes</h3>
            <table>
                <tr><th>Exit Code</th><th>Count</th></tr>
                {{range .ExitCodes}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
            <h3>Error Pattern Categories</h3>
            <table>
                <tr><th>Pattern</th><th>Count</th></tr>
                {{range .Patterns}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
        </section>

        <section>
            <h2>2b. Per-Tool Error Breakdown (Top 5 each)</h2>
            {{range .PerToolOverview}}
            <h3><a href="tools/{{.SafeName}}.html" style="color: var(--accent); text-decoration: none;">{{.Name}}</a> ({{.Total}} errors)</h3>
            <table>
                <tr><th>Count</th><th>Error Message</th></tr>
                {{range topErrors .Errors 5}}<tr><td>{{.Count}}</td><td><code>{{.Message}}</code></td></tr>
                {{end}}
            </table>
            {{end}}
        </section>

        <section>
            <h2>3. Infrastructure Analysis</h2>
            <table>
                <tr><th>Destination</th><th>Errors</th></tr>
                {{range .Destinations}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
        </section>

        <section>
            <h2>4. Temporal Patterns</h2>
            <h3>Daily Error Count</h3>
            <table>
                <tr><th>Date</th><th>Errors</th></tr>
                {{range .Daily}}<tr><td>{{.Date}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
            <h3>Errors by Day of Week</h3>
            <table>
                <tr><th>Day</th><th>Count</th></tr>
                {{range .DayOfWeek}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
            {{if .SpikeDays}}
            <h3>Spike Days</h3>
            <table>
                <tr><th>Date</th><th>Errors</th></tr>
                {{range .SpikeDays}}<tr><td>{{.Date}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
            {{end}}
        </section>

        <section>
            <h2>5. User Impact</h2>
            <h3>Top 10 Users by Error Count</h3>
            <table>
                <tr><th>User ID</th><th>Errors</th></tr>
                {{range .TopUsers}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
            <p style="margin-top: 15px; color: var(--text-muted);">Anonymous errors: <strong>{{.AnonymousCount}}</strong></p>
        </section>

        <section>
            <h2>6. Anomalies</h2>
            <h3>Exit Code 0 Failures</h3>
            <p>{{.ExitZeroCount}} jobs exited with code 0 but were marked as failed.</p>
            <table>
                <tr><th>Tool</th><th>Count</th></tr>
                {{range .ExitZeroTools}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
        </section>

        <p class="timestamp">Generated: {{.GeneratedAt}}</p>
    </div>
</body>
</html>
`

const toolTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} Errors - Job Error Analysis</title>
    <style>` + baseCSS + `</style>
</head>
<body>
    <div class="container">
        <a href="../index.html" class="back">&larr; Back to Dashboard</a>
        <h1>{{.Name}}</h1>

        <div class="stats">
            <div class="stat-card"><div class="stat-value">{{.Total}}</div><div class="stat-label">Total Errors</div></div>
            <div class="stat-card"><div class="stat-value">{{len .Errors}}</div><div class="stat-label">Unique Error Types</div></div>
            <div class="stat-card"><div class="stat-value">{{.UniqueUsers}}</div><div class="stat-label">Affected Users</div></div>
        </div>

        <section>
            <h2>Exit Codes</h2>
            <table>
                <tr><th>Exit Code</th><th>Count</th></tr>
                {{range .ExitCodes}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
        </section>

        <section>
            <h2>Destinations</h2>
            <table>
                <tr><th>Destination</th><th>Count</th></tr>
                {{range .Destinations}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
                {{end}}
            </table>
        </section>

        <section>
            <h2>All Unique Error Messages</h2>
            <table>
                <tr><th style="width: 80px;">Count</th><th>Error Message</th></tr>
                {{range .Errors}}<tr><td>{{.Count}}</td><td><span class="error-msg">{{.Message}}</span>{{if .Full}}<details><summary style="color: var(--text-muted); cursor: pointer;">Show full stderr</summary><span class="error-msg">{{.Full}}</span></details>{{end}}</td></tr>
                {{end}}
            </table>
        </section>

        <p class="timestamp">Generated: {{.GeneratedAt}}</p>
    </div>
</body>
</html>
`
