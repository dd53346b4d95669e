package render

// defaultLogoBase64 is the embedded brand logo shipped with the
// binary; deployments can override it in the report configuration.
const defaultLogoBase64 = "iVBORw0KGgoAAAANSUhEUgAAAQwAAABQCAQAAABGvoMgAAAAIGNIUk0AAHomAACAhAAA+gAAAIDoAAB1MAAA6mAAADqYAAAXcJy6UTwAAAACYktHRAD/h4/MvwAAAAd0SU1FB+cLHAoZLA7FGIEAAAqmSURBVHja7V3teeM4Doa2geVVcEoFo61glArO14GmgtFWMJoKnKvA2QqcDpytwN4K5K3AvgpwP+IoIkAS4Ednnnsevv9sSwAIvQQJiKQBKioqKioqKioqKioqKioqKioqKioqKioqKioqKipS0aTfigZ66OATGOiXL89whjP80bwC4AWMdcNj80okzNCuPl7hobnmNQcNXKwvfm+erN8PK1u/N5NabgctfHOx9wx/wwlOzVm8c63xtXlMbFcPPXyCFjqX+vI1tjADwAk+vPdFtuwOQIMjHtGPGQAAd+TbA5IzkiumbMsmItGQ3w+x2nCDO7x4W3rELbbB+9caDxqNTP8eQzgCALBrtrmejDe0ZQ/chQ0AtuxbAgA="

// reportTemplate is the full monthly report document. Styling mirrors
// the Avisia brand guidelines used by the dashboard (Poppins, deep
// blue palette, gradient headers).
const reportTemplate = `<html>
<head>
    <meta charset="UTF-8">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <link href="https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;600;700&display=swap" rel="stylesheet">
    <style>
        body { font-family: 'Poppins', sans-serif; color: #1d1973; line-height: 1.6; margin: 0; padding: 0; background-color: #f8f9fa; }
        .container { max-width: 800px; margin: 0 auto; background-color: white; }
        .header { background: linear-gradient(135deg, #1d1973 0%, #2A25E8 100%); color: white; padding: 40px 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 28px; font-weight: 700; }
        .header p { margin: 10px 0 0 0; opacity: 0.9; font-weight: 300; }
        .content { padding: 30px; }
        .summary { background-color: #f0f7ff; padding: 20px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #2ea3f2; }
        .summary h2 { margin-top: 0; color: #1d1973; font-weight: 600; font-size: 22px; }
        .chart-container { margin: 30px 0; padding: 20px; background-color: #fff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; background-color: white; box-shadow: 0 2px 8px rgba(0,0,0,0.1); border-radius: 8px; overflow: hidden; }
        th { background: linear-gradient(135deg, #1d1973 0%, #2A25E8 100%); color: white; padding: 15px 12px; text-align: left; font-weight: 600; }
        td { padding: 12px; border-bottom: 1px solid #e0e0e0; }
        tr:hover { background-color: #f8f9fa; }
        .focus-card { background: linear-gradient(135deg, #2ea3f2 0%, #2A25E8 100%); padding: 20px; border-radius: 8px; color: white; flex: 1; }
        .footer { margin-top: 30px; padding: 20px 30px; background-color: #f8f9fa; font-size: 12px; color: #666; }
        .signature { margin-top: 30px; padding: 20px; border-top: 2px solid #2ea3f2; font-size: 14px; }
        .ps { margin-top: 15px; font-size: 12px; color: #666; font-style: italic; }
    </style>
</head>
<body>
    <div class="container">
        <div style="background: linear-gradient(135deg, #1d1973 0%, #2ea3f2 100%); padding: 2rem; text-align: center; margin-bottom: 0;">
            <img src="data:image/png;base64,{{ logo_base64 }}" alt="Logo" style="width: 300px; max-width: 100%; height: auto; display: block; margin: 0 auto;">
        </div>
        <div class="header">
            <h1>Monthly Analytics Report</h1>
            <p>Période : {{ period_start }} au {{ period_end }}</p>
        </div>

        <div class="content">
            <div style="background-color: #f0f7ff; padding: 20px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #2ea3f2;">
                <p style="margin: 0 0 10px 0; font-size: 16px; color: #1d1973;"><strong>{{ greeting }},</strong></p>
                <p style="margin: 5px 0; color: #1d1973;">
                    Voici votre rapport mensuel d'analyse de la performance du site {{ site_name }} du <strong>{{ period_start }}</strong> au <strong>{{ period_end }}</strong>.
                </p>
            </div>

            <div class="summary">
                <h2>Résumé Exécutif</h2>
                <p><strong>Nombre total de sessions :</strong> {{ total_sessions | comma }} {{ sessions_evo | evolution }}</p>
                <p><strong>Nombre total de conversions* :</strong> {{ total_conversions | comma }} {{ conversions_evo | evolution }}</p>
                <p><strong>Canal qui génère le plus de trafic :</strong> {{ top_channel }} ({{ top_channel_sessions | comma }} sessions)</p>
            </div>

            {% if email_focus or social_focus %}
            <div style="display: flex; margin: 20px 0; gap: 20px;">
                {% if email_focus %}
                <div class="focus-card" style="margin-right: 10px;">
                    <h3 style="margin-top: 0; font-weight: 600;">📧 Focus Canal Email</h3>
                    <p style="margin: 8px 0;"><strong>Sessions :</strong> {{ email_focus.sessions | comma }} {{ email_focus.sessions_evo | evolution }}</p>
                    <p style="margin: 8px 0;"><strong>Conversions :</strong> {{ email_focus.conversions | comma }} {{ email_focus.conversions_evo | evolution }}</p>
                    <p style="margin: 8px 0;"><strong>Taux d'Engagement :</strong> {{ email_focus.engagement_rate | rate }} {{ email_focus.engagement_evo | evolution }}</p>
                </div>
                {% endif %}
                {% if social_focus %}
                <div class="focus-card" style="margin-left: 10px;">
                    <h3 style="margin-top: 0; font-weight: 600;">📱 Focus Réseaux Sociaux</h3>
                    <p style="margin: 8px 0;"><strong>Sessions :</strong> {{ social_focus.sessions | comma }} {{ social_focus.sessions_evo | evolution }}</p>
                    <p style="margin: 8px 0;"><strong>Conversions :</strong> {{ social_focus.conversions | comma }} {{ social_focus.conversions_evo | evolution }}</p>
                    <p style="margin: 8px 0;"><strong>Taux d'Engagement :</strong> {{ social_focus.engagement_rate | rate }} {{ social_focus.engagement_evo | evolution }}</p>
                </div>
                {% endif %}
            </div>
            {% endif %}

            <div class="chart-container">
                <h3 style="margin-top: 0; color: #1d1973; font-weight: 600;">📈 Évolution des Sessions par Campagne</h3>
                {% if campaigns.size > 0 %}
                <table cellpadding="0" cellspacing="0" width="100%">
                    <thead>
                        <tr>
                            <th style="text-align: center; width: 80px;">#</th>
                            <th>Campagne</th>
                            <th style="text-align: right;">Sessions</th>
                        </tr>
                    </thead>
                    <tbody>
                        {% for c in campaigns %}
                        <tr>
                            <td style="text-align: center; font-weight: 600; color: #1d1973;">{{ c.rank }}</td>
                            <td>{{ c.campaign }}</td>
                            <td style="text-align: right; font-weight: 600;">{{ c.sessions | comma }}</td>
                        </tr>
                        {% endfor %}
                    </tbody>
                </table>
                {% else %}
                <p style="color: #666; font-style: italic;">Aucune donnée de campagne disponible pour cette période.</p>
                {% endif %}
            </div>

            <h2 style="color: #1d1973; font-weight: 600; margin-top: 40px;">🧮 Zoom sur les résultats par canal et leurs évolutions par rapport au mois précédent</h2>
            <table>
                <thead>
                    <tr>
                        <th>Canal</th>
                        <th style="text-align: right;">Sessions</th>
                        <th style="text-align: right;">Conversions</th>
                        <th style="text-align: right;">Taux d'Engagement</th>
                    </tr>
                </thead>
                <tbody>
                    {% for ch in channels %}
                    <tr>
                        <td>{{ ch.channel }}</td>
                        <td style="text-align: right; font-weight: 600;">{{ ch.sessions | comma }}{{ ch.sessions_evo | evolution }}</td>
                        <td style="text-align: right; font-weight: 600;">{{ ch.conversions | comma }}{{ ch.conversions_evo | evolution }}</td>
                        <td style="text-align: right;">{{ ch.engagement_rate | rate }}{{ ch.engagement_evo | evolution }}</td>
                    </tr>
                    {% endfor %}
                </tbody>
            </table>

            <div style="background: linear-gradient(135deg, #fff3e0 0%, #ffe0f0 100%); padding: 20px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #2ea3f2;">
                <h2 style="color: #1d1973; margin-top: 0; font-weight: 600;">🧠 Analyse par l'agent IA</h2>
                <div>{{ narrative_html }}</div>
                <p style="margin-top: 15px; font-size: 12px; color: #666; font-style: italic;">
                    Généré par le modèle {{ model_name }}
                </p>
            </div>

            <div style="background-color: #f0f7ff; padding: 20px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #2ea3f2;">
                <h4 style="margin-top: 0; color: #1d1973; font-weight: 600;">📌 * À propos des Conversions</h4>
                <p style="margin: 5px 0; color: #1d1973;">
                    Dans ce rapport, les <strong>conversions</strong> font référence à l'événement clé <code style="background-color: #2ea3f2; color: white; padding: 2px 8px; border-radius: 4px; font-weight: 600;">{{ conversion_event }}</code> suivi dans Google Analytics 4.
                    Cette métrique indique quand les utilisateurs soumettent le formulaire de demande de contact sur le site web.
                </p>
                <p style="margin: 5px 0; font-size: 12px; color: #666; font-style: italic;">
                    Note : La définition de conversion peut changer dans les futurs rapports.
                </p>
            </div>

            <div class="signature">
                <p style="margin: 5px 0;">Bien cordialement,</p>
                <p style="margin: 5px 0; font-weight: 600; color: #2ea3f2;">La Practice Digitale</p>
                <div class="ps">
                    <p>P.S. : Pour toute question, contactez Mario Nuñez 🙏</p>
                </div>
            </div>
        </div>
        <div class="footer">
            <p>🤖 Rapport automatisé généré le {{ generated_at }}</p>
            <p>Propulsé par Google Analytics 4 et AWS Bedrock</p>
        </div>
    </div>
</body>
</html>`

// noDataTemplate is the degraded document sent when the period has no
// channel rows at all.
const noDataTemplate = `<html>
<head>
    <meta charset="UTF-8">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <link href="https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;600;700&display=swap" rel="stylesheet">
</head>
<body style="font-family: 'Poppins', sans-serif;">
    <h2>Monthly Analytics Report</h2>
    <p>Aucune donnée disponible pour la période du {{ period_start }} au {{ period_end }}.</p>
</body>
</html>`
