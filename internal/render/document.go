package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"hcrm/internal/card"
)

// documentData is the structured input to the card document template.
// All dynamic values flow through template fields so escaping is handled
// by html/template, never by string concatenation.
type documentData struct {
	Card   card.Data
	Title  string
	Footer string

	Background  template.URL
	FontDisplay template.URL
	FontHeading template.URL
	FontBody    template.URL
}

func dataURI(mime string, data []byte) template.URL {
	if len(data) == 0 {
		return ""
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// buildDocument renders the complete styled card document with all assets
// inlined as data URIs, so the page settles without any network traffic.
func buildDocument(data card.Data, assets AssetSet, opts Options) (string, error) {
	title := opts.Title
	if title == "" {
		title = "HCRM"
	}
	var buf bytes.Buffer
	err := cardTemplate.Execute(&buf, documentData{
		Card:        data,
		Title:       title,
		Footer:      opts.Footer,
		Background:  dataURI("image/jpeg", assets.Background),
		FontDisplay: dataURI("font/otf", assets.FontDisplay),
		FontHeading: dataURI("font/otf", assets.FontHeading),
		FontBody:    dataURI("font/ttf", assets.FontBody),
	})
	if err != nil {
		return "", fmt.Errorf("execute card template: %w", err)
	}
	return buf.String(), nil
}

var cardTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <style>
        @font-face {
            font-family: 'Anurati';
            src: url({{.FontDisplay}});
        }
        @font-face {
            font-family: 'ChiMing';
            src: url({{.FontHeading}});
        }
        @font-face {
            font-family: 'Zcool';
            src: url({{.FontBody}});
        }

        body {
            margin: 0;
            padding: 0;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            background: transparent;
        }

        .main-card {
            position: relative;
            width: 360px;
            padding: 50px 30px;
            background: url({{.Background}}) center center / cover no-repeat;
            overflow: hidden;
            box-shadow: 0 10px 30px rgba(0,0,0,0.5);
            display: flex;
            flex-direction: column;
            align-items: center;
        }

        .main-card::before {
            content: '';
            position: absolute;
            top: 0;
            left: 0;
            right: 0;
            bottom: 0;
            background: rgba(0, 0, 0, 0.3);
            z-index: 0;
        }

        .glass-panel {
            position: relative;
            z-index: 1;
            width: 100%;
            box-sizing: border-box;
            background: rgba(0, 0, 0, 0.2);
            backdrop-filter: blur(6px);
            padding: 25px 20px;
            display: flex;
            flex-direction: column;
            align-items: center;
            gap: 15px;
            border: 3px solid rgba(255, 255, 255, 0.5);
        }

        .title {
            font-family: 'Anurati', sans-serif;
            font-size: 42px;
            letter-spacing: 2px;
            color: #fff;
            text-shadow: 0 0 10px rgba(255, 255, 255, 0.6);
            margin: 0;
            text-align: center;
        }

        .lunar-box {
            text-align: center;
            margin-top: -10px;
            margin-bottom: 5px;
            display: flex;
            flex-direction: column;
            gap: 4px;
        }
        .lunar-text {
            font-family: 'Zcool', sans-serif;
            font-size: 12px;
            color: #ccc;
            opacity: 0.9;
            letter-spacing: 1px;
        }

        .time-block {
            text-align: center;
            margin-bottom: 10px;
        }
        .time-str {
            font-family: 'Zcool', sans-serif;
            font-size: 28px;
            color: #fff;
            text-shadow: 0 0 5px rgba(255, 255, 255, 0.4);
        }
        .timestamp {
            font-family: 'ChiMing', sans-serif;
            font-size: 14px;
            color: rgba(255, 255, 255, 0.8);
            margin-top: 5px;
            letter-spacing: 1px;
        }

        .stat-group {
            width: 100%;
            display: flex;
            flex-direction: column;
            gap: 5px;
            margin-bottom: 10px;
        }

        .stat-row {
            display: flex;
            align-items: center;
            justify-content: space-between;
            width: 100%;
        }

        .stat-label {
            font-family: 'ChiMing', sans-serif;
            font-size: 18px;
            color: #fff;
            width: 50px;
            text-shadow: 0 0 5px rgba(255, 255, 255, 0.5);
        }

        .stat-value-text {
            font-family: 'ChiMing', sans-serif;
            font-size: 18px;
            color: #fff;
            margin-left: 10px;
            min-width: 50px;
            text-align: right;
        }

        .progress-container {
            flex: 1;
            height: 14px;
            background: rgba(255, 255, 255, 0.2);
            overflow: hidden;
        }

        .progress-bar {
            height: 100%;
            background: #fff;
            transition: width 0.5s ease;
        }

        .info-text {
            font-family: 'ChiMing', sans-serif;
            font-size: 12px;
            color: rgba(255, 255, 255, 0.7);
            text-align: left;
            width: 100%;
            padding-left: 50px;
            box-sizing: border-box;
            margin-top: -2px;
        }

        .hitokoto-box {
            width: 100%;
            text-align: center;
            margin-top: 15px;
            margin-bottom: 5px;
            padding: 0 5px;
        }
        .hitokoto-text {
            font-family: 'Zcool', sans-serif;
            font-size: 14px;
            color: #fff;
            line-height: 1.5;
            text-shadow: 0 0 5px rgba(255, 255, 255, 0.4);
            font-style: italic;
        }

        .footer {
            font-family: 'ChiMing', sans-serif;
            font-size: 12px;
            color: #ccc;
            margin-top: 5px;
            text-align: center;
            opacity: 0.9;
            letter-spacing: 1px;
        }

        .hash-text {
            position: absolute;
            bottom: 5px;
            right: 10px;
            font-family: 'ChiMing', sans-serif;
            font-size: 8px;
            color: rgba(255, 255, 255, 0.2);
            letter-spacing: 1px;
            text-align: right;
        }
    </style>
</head>
<body>
    <div class="main-card">
        <div class="glass-panel">
            <div class="hash-text">{{.Card.ContentHash}}</div>
            <h1 class="title">{{.Title}}</h1>

            <div class="lunar-box">
                <div class="lunar-text">{{.Card.LunarText}}</div>
                <div class="lunar-text">{{.Card.MoodGreeting}}</div>
            </div>

            <div class="time-block">
                <div class="time-str">{{.Card.DateText}} {{.Card.TimeText}}</div>
                <div class="timestamp">Timestamp: {{.Card.TimestampMillis}}</div>
            </div>

            <div class="stat-group">
                <div class="stat-row">
                    <span class="stat-label">CPU</span>
                    <div class="progress-container">
                        <div class="progress-bar" style="width: {{.Card.Stats.CPUPercent}}%"></div>
                    </div>
                    <span class="stat-value-text">{{.Card.Stats.CPUPercent}}%</span>
                </div>
                <div class="info-text">{{.Card.Stats.CPUModel}}</div>
            </div>

            <div class="stat-group">
                <div class="stat-row">
                    <span class="stat-label">RAM</span>
                    <div class="progress-container">
                        <div class="progress-bar" style="width: {{.Card.Stats.RAMPercent}}%"></div>
                    </div>
                    <span class="stat-value-text">{{.Card.Stats.RAMPercent}}%</span>
                </div>
                <div class="info-text">OS: {{.Card.Stats.OS}}</div>
            </div>

            <div class="hitokoto-box">
                <div class="hitokoto-text">“ {{.Card.Quote}} ”</div>
            </div>

            <div class="footer">{{.Footer}}</div>
        </div>
    </div>
</body>
</html>
`))
