package render

const templates = `
{{define "alert"}}<div class="alert alert-{{.Level}}">{{.Message}}</div>{{end}}

{{define "copy"}}<button type="button" class="btn btn-sm btn-outline-secondary copy-btn" data-content="{{.}}"><i class="bi bi-clipboard"></i> Copy</button>{{end}}

{{define "query"}}<div class="card mb-3">
  <div class="card-header d-flex justify-content-between align-items-center">
    <h5 class="mb-0">Generated Query</h5>
    {{template "copy" .Encoded}}
  </div>
  <div class="card-body">
    <pre class="query-result"><code class="language-sql">{{.Code}}</code></pre>
  </div>
</div>{{end}}

{{define "solution"}}{{if .Empty}}<p>No solution available.</p>{{else if .Ordered}}<ol class="ps-3">{{range .Items}}<li>{{.}}</li>{{end}}</ol>{{else}}{{range .Items}}<p>{{.}}</p>{{end}}{{end}}{{end}}

{{define "error_analysis"}}<div class="card mb-3">
  <div class="card-header">
    <h5 class="mb-0">Error Analysis: {{.Type}}</h5>
  </div>
  <div class="card-body">
    <h6>Explanation:</h6>
    <p>{{.Explanation}}</p>
    <h6>Solution:</h6>
    <div class="solution">{{.Solution}}</div>
    {{- if .Code}}
    <div class="mt-3"><small class="text-muted">Error Code: {{.Code}}</small></div>
    {{- end}}
  </div>
</div>{{end}}

{{define "schema"}}<div class="card mb-3">
  <div class="card-header">
    <h5 class="mb-0">Schema Analysis: {{.TableName}}</h5>
  </div>
  <div class="card-body">
    {{- if .Columns}}
    <div class="table-responsive">
      <table class="table table-sm table-striped">
        <thead><tr><th>Column</th><th>Type</th><th>Nullable</th><th>Default</th><th>PK</th></tr></thead>
        <tbody>
          {{- range .Columns}}
          <tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{if .Nullable}}Yes{{else}}No{{end}}</td><td>{{if .Default}}<code>{{.Default}}</code>{{else}}-{{end}}</td><td>{{if .PK}}✓{{end}}</td></tr>
          {{- end}}
        </tbody>
      </table>
    </div>
    {{- else}}
    <div class="alert alert-warning">No column information available.</div>
    {{- end}}
    {{- if .ForeignKeys}}
    <h6 class="mt-3">Foreign Keys:</h6>
    <ul>
      {{- range .ForeignKeys}}
      <li>{{.Name}}: ({{.Columns}}) → {{.Table}} ({{.RefColumns}})</li>
      {{- end}}
    </ul>
    {{- end}}
    {{- if .Indexes}}
    <h6 class="mt-3">Indexes:</h6>
    <ul>
      {{- range .Indexes}}
      <li>{{.Name}}: {{if .Unique}}UNIQUE {{end}}({{.Columns}})</li>
      {{- end}}
    </ul>
    {{- end}}
    {{- if .CreateSQL}}
    <div class="d-flex justify-content-between align-items-center mt-3">
      <h6 class="mb-0">CREATE TABLE SQL:</h6>
      {{template "copy" .CreateEncoded}}
    </div>
    <pre class="query-result mt-2"><code class="language-sql">{{.CreateCode}}</code></pre>
    {{- end}}
    {{- if .Sample}}
    <h6 class="mt-3">Sample Data Structure:</h6>
    <pre class="bg-light p-3 rounded"><code class="language-json">{{.Sample}}</code></pre>
    {{- end}}
  </div>
</div>{{end}}

{{define "doc_search"}}<h5 class="mb-3">Documentation Search Results:</h5>
{{- range .}}
<div class="card mb-2">
  <div class="card-body">
    <h6 class="card-title"><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a></h6>
    <small class="text-muted">{{.URL}}</small>
    <p class="card-text mt-2">{{if .Snippet}}{{.Snippet}}{{else}}No description available.{{end}}</p>
  </div>
</div>
{{- end}}{{end}}

{{define "generic"}}<pre class="bg-dark text-light p-3 rounded">{{.}}</pre>{{end}}
`
